// Package input turns knob-like controls into tuner and volume events.
package input

import (
	"math"
	"sync"
)

// Dial is a continuous scale between min and max, moved in increments of
// step, like a rotary encoder's counter. Every adapter that tunes the radio
// goes through the same Dial so they agree on the current position.
type Dial struct {
	min, max, step float64
	onChange       func(float64)

	mu  sync.Mutex
	pos float64
}

// NewDial creates a dial resting at min. onChange receives every new
// position.
func NewDial(min, max, step float64, onChange func(float64)) *Dial {
	return &Dial{min: min, max: max, step: step, onChange: onChange, pos: min}
}

// Step moves the dial n increments (negative n turns it down) and returns
// the new position.
func (d *Dial) Step(n int) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.moveTo(d.pos + float64(n)*d.step)
}

// Set moves the dial to v and returns the new position.
func (d *Dial) Set(v float64) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.moveTo(v)
}

// Position returns the current position.
func (d *Dial) Position() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos
}

// Min returns the lower end of the scale.
func (d *Dial) Min() float64 { return d.min }

// Max returns the upper end of the scale.
func (d *Dial) Max() float64 { return d.max }

// moveTo clamps v and notifies when the position changed. NaN leaves the
// dial where it is. Called with mu held so listeners see positions in the
// order the dial took them.
func (d *Dial) moveTo(v float64) float64 {
	if math.IsNaN(v) {
		return d.pos
	}
	if v < d.min {
		v = d.min
	}
	if v > d.max {
		v = d.max
	}
	if v == d.pos {
		return v
	}
	d.pos = v
	if d.onChange != nil {
		d.onChange(v)
	}
	return v
}
