// Package stream lets remote listeners hear the dial: the mixed output is
// fanned out to HTTP (MP3 through ffmpeg) and WebRTC (Opus) clients.
package stream

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// listenerBuffer is ~3 seconds of 20ms frames.
const listenerBuffer = 150

// Broadcaster fans out PCM frames from one source to N listeners.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[*Listener]struct{}
}

// Listener receives PCM frames from the broadcaster.
type Listener struct {
	ID string
	C  chan []int16 // buffered channel of 20ms PCM frames

	done    chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

// Done is closed when the listener is unsubscribed.
func (l *Listener) Done() <-chan struct{} { return l.done }

// Dropped returns how many frames this listener missed for being slow.
func (l *Listener) Dropped() uint64 { return l.dropped.Load() }

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		listeners: make(map[*Listener]struct{}),
	}
}

// Subscribe registers a new listener.
func (b *Broadcaster) Subscribe() *Listener {
	l := &Listener{
		ID:   uuid.NewString(),
		C:    make(chan []int16, listenerBuffer),
		done: make(chan struct{}),
	}
	b.mu.Lock()
	b.listeners[l] = struct{}{}
	b.mu.Unlock()
	return l
}

// Unsubscribe removes a listener and signals it to stop. Safe to call more
// than once.
func (b *Broadcaster) Unsubscribe(l *Listener) {
	b.mu.Lock()
	delete(b.listeners, l)
	b.mu.Unlock()
	l.once.Do(func() { close(l.done) })
}

// ListenerCount returns the number of active listeners.
func (b *Broadcaster) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

// Run reads frames from source and fans out to all listeners until ctx is
// cancelled or source is closed. Slow listeners get frames dropped rather
// than blocking the broadcast.
func (b *Broadcaster) Run(ctx context.Context, source <-chan []int16) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-source:
			if !ok {
				return
			}
			b.mu.RLock()
			for l := range b.listeners {
				select {
				case l.C <- frame:
				default:
					l.dropped.Add(1)
				}
			}
			b.mu.RUnlock()
		}
	}
}
