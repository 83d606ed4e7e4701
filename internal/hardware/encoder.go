package hardware

import (
	"context"
	"time"

	"github.com/pion/logging"
	"github.com/stianeikeland/go-rpio/v4"
)

const (
	pollInterval   = time.Millisecond
	buttonDebounce = 250 * time.Millisecond
)

// Encoder polls a KY-040 rotary encoder.
type Encoder struct {
	OnIncrement func()
	OnDecrement func()
	OnPress     func()

	read     func() (clk, dt, sw rpio.State)
	interval time.Duration
	log      logging.LeveledLogger
}

func newEncoder(read func() (rpio.State, rpio.State, rpio.State), log logging.LeveledLogger) *Encoder {
	return &Encoder{read: read, interval: pollInterval, log: log}
}

// Watch polls the encoder until ctx is cancelled, invoking the callbacks on
// the calling goroutine.
func (e *Encoder) Watch(ctx context.Context) {
	clk, _, sw := e.read()
	q := quadrature{lastCLK: clk, lastSW: sw}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			clk, dt, sw := e.read()
			dir, pressed := q.update(clk, dt, sw, now)
			switch {
			case dir > 0 && e.OnIncrement != nil:
				e.OnIncrement()
			case dir < 0 && e.OnDecrement != nil:
				e.OnDecrement()
			}
			if pressed && e.OnPress != nil {
				e.log.Debug("Encoder button pressed")
				e.OnPress()
			}
		}
	}
}

// quadrature decodes CLK/DT transitions. On every CLK change the rotation
// is clockwise when DT differs from CLK. The switch is active low.
type quadrature struct {
	lastCLK   rpio.State
	lastSW    rpio.State
	lastPress time.Time
}

func (q *quadrature) update(clk, dt, sw rpio.State, now time.Time) (dir int, pressed bool) {
	if clk != q.lastCLK {
		if dt != clk {
			dir = 1
		} else {
			dir = -1
		}
	}
	q.lastCLK = clk

	if sw != q.lastSW && sw == rpio.Low && now.Sub(q.lastPress) >= buttonDebounce {
		pressed = true
		q.lastPress = now
	}
	q.lastSW = sw
	return dir, pressed
}
