package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const speakerBuffer = 100 * time.Millisecond

// PlayLocal starts playing s on the default output device.
func PlayLocal(s beep.Streamer) error {
	if err := speaker.Init(Format.SampleRate, Format.SampleRate.N(speakerBuffer)); err != nil {
		return fmt.Errorf("speaker: %w", err)
	}
	speaker.Play(s)
	return nil
}

// StopLocal stops local playback.
func StopLocal() {
	speaker.Clear()
}
