package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies a console command.
type Kind int

const (
	KindNone Kind = iota
	KindTuneUp
	KindTuneDown
	KindTune
	KindVolumeUp
	KindVolumeDown
	KindMute
	KindStatus
	KindHelp
	KindQuit
)

// Command is a parsed console line.
type Command struct {
	Kind  Kind
	Steps int     // for KindTuneUp / KindTuneDown
	VFreq float64 // for KindTune
}

var errUnknownCommand = errors.New("unknown command")

const helpText = `commands:
  + [n]         turn the dial up n steps (default 1)
  - [n]         turn the dial down n steps (default 1)
  tune <vfreq>  jump to a virtual frequency
  up | down     global volume up/down
  mute          toggle mute
  status        show stations and volumes
  help          this text
  quit          exit`

// ParseCommand parses one console line.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: KindNone}, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "+", "-":
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return Command{}, fmt.Errorf("step count must be a positive integer: %q", args[0])
			}
			steps = n
		}
		if name == "+" {
			return Command{Kind: KindTuneUp, Steps: steps}, nil
		}
		return Command{Kind: KindTuneDown, Steps: steps}, nil
	case "tune", "t":
		if len(args) != 1 {
			return Command{}, errors.New("usage: tune <vfreq>")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Command{}, fmt.Errorf("invalid vfreq %q: %w", args[0], err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Command{}, fmt.Errorf("invalid vfreq %q: not a finite number", args[0])
		}
		return Command{Kind: KindTune, VFreq: v}, nil
	case "up", "vol+":
		return Command{Kind: KindVolumeUp}, nil
	case "down", "vol-":
		return Command{Kind: KindVolumeDown}, nil
	case "mute", "m":
		return Command{Kind: KindMute}, nil
	case "status", "s":
		return Command{Kind: KindStatus}, nil
	case "help", "h", "?":
		return Command{Kind: KindHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: KindQuit}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", errUnknownCommand, fields[0])
}
