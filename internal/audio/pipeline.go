package audio

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
)

// Pipeline cuts the rendered mix into 20ms interleaved PCM frames for the
// stream broadcaster. It either drives the source itself at real-time rate
// (Run, when nothing plays locally) or taps the samples the local speaker
// pulls (Tap).
type Pipeline struct {
	source  beep.Streamer
	frameCh chan []int16

	frames  atomic.Uint64
	dropped atomic.Uint64
}

// NewPipeline creates a pipeline rendering source.
func NewPipeline(source beep.Streamer) *Pipeline {
	return &Pipeline{
		source:  source,
		frameCh: make(chan []int16, 100),
	}
}

// Frames returns the channel of outgoing PCM frames (20ms each).
func (p *Pipeline) Frames() <-chan []int16 {
	return p.frameCh
}

// Stats returns how many frames were emitted and how many were dropped
// because the consumer fell behind.
func (p *Pipeline) Stats() (frames, dropped uint64) {
	return p.frames.Load(), p.dropped.Load()
}

// Run renders one frame per tick until ctx is cancelled, then closes the
// frame channel. Do not combine with Tap.
func (p *Pipeline) Run(ctx context.Context) {
	defer close(p.frameCh)

	ticker := time.NewTicker(FrameDuration)
	defer ticker.Stop()

	buf := make([][2]float64, FrameSize)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		n, ok := p.source.Stream(buf)
		if !ok {
			return
		}
		for i := n; i < len(buf); i++ {
			buf[i] = [2]float64{}
		}
		frame := make([]int16, FrameSamples)
		ToPCM(frame, buf)

		select {
		case p.frameCh <- frame:
			p.frames.Add(1)
		case <-ctx.Done():
			return
		}
	}
}

// Tap returns a streamer that plays source and copies what it renders into
// frames. Frames are dropped rather than stalling the audio callback.
func (p *Pipeline) Tap() beep.Streamer {
	return &tap{p: p}
}

type tap struct {
	p       *Pipeline
	pending []int16
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.p.source.Stream(samples)
	if n > 0 {
		start := len(t.pending)
		t.pending = append(t.pending, make([]int16, n*Channels)...)
		ToPCM(t.pending[start:], samples[:n])
	}
	for len(t.pending) >= FrameSamples {
		frame := make([]int16, FrameSamples)
		copy(frame, t.pending)
		t.pending = append(t.pending[:0], t.pending[FrameSamples:]...)

		select {
		case t.p.frameCh <- frame:
			t.p.frames.Add(1)
		default:
			t.p.dropped.Add(1)
		}
	}
	return n, ok
}

func (t *tap) Err() error { return t.p.source.Err() }
