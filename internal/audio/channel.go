package audio

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/pion/logging"

	"github.com/satindergrewal/dial/internal/station"
)

const resampleQuality = 4

// Channel is a playing station's gain control. Volume is linear in [0,1].
// SetVolume only records the gain; the mixer moves it onto the beep volume
// effect (as a base-2 exponent, so 1 is unity gain exactly) before it
// renders the next buffer. Methods must be called with the owning Mixer
// locked.
type Channel struct {
	vol  *effects.Volume
	gain float64
}

// SetVolume sets linear gain, clamped to [0,1]. NaN is treated as silence.
func (c *Channel) SetVolume(v float64) {
	switch {
	case v <= 0 || math.IsNaN(v):
		v = 0
	case v > 1:
		v = 1
	}
	c.gain = v
}

// Volume returns linear gain.
func (c *Channel) Volume() float64 {
	return c.gain
}

// apply copies the gain onto the volume effect. Called by the mixer with
// its lock held and no render in progress.
func (c *Channel) apply() {
	if c.gain <= 0 {
		c.vol.Silent = true
		c.vol.Volume = 0
		return
	}
	c.vol.Silent = false
	c.vol.Volume = math.Log2(c.gain)
}

// Track is a decoded station waiting to be played.
type Track struct {
	stream beep.StreamSeekCloser
	format beep.Format
	mixer  *Mixer
}

// Play adds the track to the mixer at full volume. With loop set the track
// restarts from the beginning whenever it ends.
func (t *Track) Play(loop bool) (station.Channel, error) {
	var s beep.Streamer = t.stream
	if loop {
		s = beep.Loop(-1, t.stream)
	}
	if t.format.SampleRate != Format.SampleRate {
		s = beep.Resample(resampleQuality, t.format.SampleRate, Format.SampleRate, s)
	}
	return t.mixer.addChannel(s), nil
}

// Opener decodes station files into a mixer.
type Opener struct {
	mixer *Mixer
	log   logging.LeveledLogger

	mu      sync.Mutex
	closers []io.Closer
}

// NewOpener returns an opener feeding m.
func NewOpener(m *Mixer, log logging.LeveledLogger) *Opener {
	return &Opener{mixer: m, log: log}
}

// Open decodes src.
func (o *Opener) Open(src station.Source) (station.Playable, error) {
	s, format, err := DecodeFile(src.Path)
	if err != nil {
		return nil, err
	}
	o.log.Debugf("%s: %d Hz, %d channels", src.Name, format.SampleRate, format.NumChannels)

	o.mu.Lock()
	o.closers = append(o.closers, s)
	o.mu.Unlock()
	return &Track{stream: s, format: format, mixer: o.mixer}, nil
}

// Close closes every opened stream.
func (o *Opener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	var firstErr error
	for _, c := range o.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close stream: %w", err)
		}
	}
	o.closers = nil
	return firstErr
}
