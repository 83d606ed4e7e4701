package audio

import (
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// Mixer sums every playing station.
//
// Lock/Unlock guard the pending gains of the mixer's channels and are only
// ever held for a few assignments. Stream copies the pending gains onto the
// beep graph under that lock and renders outside it, so a rendered buffer
// never mixes two sets of gains and a volume change never waits for decode.
type Mixer struct {
	mu       sync.Mutex // pending gains
	channels []*Channel

	render sync.Mutex // beep graph
	mix    beep.Mixer
}

// NewMixer returns an empty mixer. An empty mixer streams silence.
func NewMixer() *Mixer {
	return &Mixer{}
}

// Lock locks the pending gains.
func (m *Mixer) Lock() { m.mu.Lock() }

// Unlock unlocks the pending gains.
func (m *Mixer) Unlock() { m.mu.Unlock() }

// Add starts streaming s at unity gain, without a gain control.
func (m *Mixer) Add(s beep.Streamer) {
	m.render.Lock()
	m.mix.Add(s)
	m.render.Unlock()
}

// addChannel starts streaming s behind a gain control.
func (m *Mixer) addChannel(s beep.Streamer) *Channel {
	ch := &Channel{vol: &effects.Volume{Streamer: s, Base: 2}, gain: 1}

	m.mu.Lock()
	m.channels = append(m.channels, ch)
	m.mu.Unlock()

	m.Add(ch.vol)
	return ch
}

// Len returns the number of playing streamers.
func (m *Mixer) Len() int {
	m.render.Lock()
	defer m.render.Unlock()
	return m.mix.Len()
}

// Stream renders the mix. It never drains.
func (m *Mixer) Stream(samples [][2]float64) (int, bool) {
	m.render.Lock()
	defer m.render.Unlock()

	m.mu.Lock()
	for _, ch := range m.channels {
		ch.apply()
	}
	m.mu.Unlock()

	return m.mix.Stream(samples)
}

// Err always returns nil.
func (m *Mixer) Err() error { return nil }
