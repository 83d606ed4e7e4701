// Package hardware drives the Raspberry Pi GPIO: the tuned LED and the two
// KY-040 rotary encoders.
package hardware

import (
	"fmt"
	"sync"

	"github.com/pion/logging"
	"github.com/stianeikeland/go-rpio/v4"
)

// GPIO is an open handle on the BCM GPIO registers.
type GPIO struct {
	log logging.LeveledLogger
}

// Open maps GPIO memory. It fails on machines without a Pi GPIO block.
func Open(log logging.LeveledLogger) (*GPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("gpio: %w", err)
	}
	log.Info("GPIO opened")
	return &GPIO{log: log}, nil
}

// Close unmaps GPIO memory.
func (g *GPIO) Close() error {
	return rpio.Close()
}

// LED configures pin as an output driving an LED.
func (g *GPIO) LED(pin int) *LED {
	p := rpio.Pin(pin)
	p.Output()
	p.Low()
	return &LED{pin: p}
}

// Encoder configures the three encoder pins as pulled-up inputs.
func (g *GPIO) Encoder(clk, dt, sw int) *Encoder {
	pins := [3]rpio.Pin{rpio.Pin(clk), rpio.Pin(dt), rpio.Pin(sw)}
	for _, p := range pins {
		p.Input()
		p.PullUp()
	}
	return newEncoder(func() (rpio.State, rpio.State, rpio.State) {
		return pins[0].Read(), pins[1].Read(), pins[2].Read()
	}, g.log)
}

type outputPin interface {
	High()
	Low()
}

// LED is a tuned indicator on a GPIO output.
type LED struct {
	mu  sync.Mutex
	pin outputPin
}

// Set switches the LED on or off.
func (l *LED) Set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if on {
		l.pin.High()
	} else {
		l.pin.Low()
	}
}
