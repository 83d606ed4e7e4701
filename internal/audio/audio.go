// Package audio plays the stations: it decodes station files, loops them
// into a shared mixer with a gain control per station, and turns the mix
// into PCM frames for local playback and streaming.
package audio

import (
	"time"

	"github.com/faiface/beep"
)

const (
	SampleRate    = 48000
	Channels      = 2
	BitDepth      = 16
	FrameDuration = 20 * time.Millisecond
	FrameSize     = 960                  // samples per channel per 20ms frame
	FrameSamples  = FrameSize * Channels // total interleaved samples per frame
	FrameBytes    = FrameSamples * 2     // bytes per frame (int16 = 2 bytes)
)

// Format is the format of the mix. Stations in other sample rates are
// resampled to it.
var Format = beep.Format{
	SampleRate:  beep.SampleRate(SampleRate),
	NumChannels: Channels,
	Precision:   BitDepth / 8,
}
