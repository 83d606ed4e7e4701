package input

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/pion/logging"

	"github.com/satindergrewal/dial/internal/tuner"
)

// Volume receives global volume knob events.
type Volume interface {
	Increment()
	Decrement()
	ToggleMute()
}

// Console is an interactive tuning and volume adapter for machines without
// rotary encoders.
type Console struct {
	dial   *Dial
	volume Volume
	status func() tuner.Status
	log    logging.LeveledLogger
}

// NewConsole creates a console adapter.
func NewConsole(dial *Dial, volume Volume, status func() tuner.Status, log logging.LeveledLogger) *Console {
	return &Console{dial: dial, volume: volume, status: status, log: log}
}

// Run reads commands until quit, EOF, interrupt or ctx cancellation.
func (c *Console) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dial> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("tune"),
			readline.PcItem("up"),
			readline.PcItem("down"),
			readline.PcItem("mute"),
			readline.PcItem("status"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	defer rl.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			rl.Close()
		case <-done:
		}
	}()

	out := rl.Stdout()
	fmt.Fprintln(out, "type 'help' for commands")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("console: %w", err)
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if c.Exec(cmd, out) {
			return nil
		}
	}
}

// Exec runs one command, writing any output to w. It reports whether the
// console should exit.
func (c *Console) Exec(cmd Command, w io.Writer) (quit bool) {
	switch cmd.Kind {
	case KindTuneUp:
		fmt.Fprintf(w, "vfreq %g\n", c.dial.Step(cmd.Steps))
	case KindTuneDown:
		fmt.Fprintf(w, "vfreq %g\n", c.dial.Step(-cmd.Steps))
	case KindTune:
		fmt.Fprintf(w, "vfreq %g\n", c.dial.Set(cmd.VFreq))
	case KindVolumeUp:
		c.volume.Increment()
	case KindVolumeDown:
		c.volume.Decrement()
	case KindMute:
		c.volume.ToggleMute()
	case KindStatus:
		writeStatus(w, c.status())
	case KindHelp:
		fmt.Fprintln(w, helpText)
	case KindQuit:
		c.log.Info("Console quit")
		return true
	}
	return false
}

func writeStatus(w io.Writer, st tuner.Status) {
	mark := ""
	if st.Tuned {
		mark = " [tuned]"
	}
	fmt.Fprintf(w, "vfreq %g%s\n", st.VFreq, mark)
	for _, s := range st.Stations {
		fmt.Fprintf(w, "  %-20s %7.2f  %.1f\n", s.Name, s.VFreq, s.Volume)
	}
}
