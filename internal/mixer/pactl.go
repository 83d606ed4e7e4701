package mixer

import (
	"fmt"
	"os/exec"

	"github.com/pion/logging"

	ilog "github.com/satindergrewal/dial/internal/logging"
)

// Pactl is an OSMixer backed by PulseAudio's pactl command.
type Pactl struct {
	Binary string // defaults to "pactl"
	Sink   string // defaults to "0"
	log    logging.LeveledLogger
}

// NewPactl returns a pactl mixer for sink.
func NewPactl(sink string, log logging.LeveledLogger) *Pactl {
	return &Pactl{Binary: "pactl", Sink: sink, log: log}
}

// Adjust starts `pactl set-sink-volume` without waiting for it. The process
// is reaped in the background and a non-zero exit is logged.
func (p *Pactl) Adjust(deltaPercent int) error {
	cmd := exec.Command(p.binary(), "set-sink-volume", p.sink(), fmt.Sprintf("%+d%%", deltaPercent))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("pactl set-sink-volume: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			p.logger().Errorf("pactl set-sink-volume %+d%%: %v", deltaPercent, err)
		}
	}()
	return nil
}

// ToggleMute runs `pactl set-sink-mute <sink> toggle` to completion.
func (p *Pactl) ToggleMute() error {
	out, err := exec.Command(p.binary(), "set-sink-mute", p.sink(), "toggle").CombinedOutput()
	if err != nil {
		return fmt.Errorf("pactl set-sink-mute: %w: %s", err, out)
	}
	return nil
}

func (p *Pactl) binary() string {
	if p.Binary == "" {
		return "pactl"
	}
	return p.Binary
}

func (p *Pactl) logger() logging.LeveledLogger {
	if p.log == nil {
		return ilog.Discard()
	}
	return p.log
}

func (p *Pactl) sink() string {
	if p.Sink == "" {
		return "0"
	}
	return p.Sink
}
