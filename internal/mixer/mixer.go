// Package mixer drives the system-wide output volume through the OS mixer.
package mixer

import (
	"github.com/pion/logging"
)

// OSMixer changes system output volume. Adjust only dispatches the change
// and returns once it is under way; ToggleMute returns when it is done.
type OSMixer interface {
	Adjust(deltaPercent int) error
	ToggleMute() error
}

// Controller turns volume knob events into OS mixer commands. Failures are
// logged and never returned, so a broken mixer cannot stall the knob.
type Controller struct {
	mixer OSMixer
	step  int
	log   logging.LeveledLogger
}

// NewController creates a controller moving the volume by step percent per
// knob detent.
func NewController(m OSMixer, step int, log logging.LeveledLogger) *Controller {
	return &Controller{mixer: m, step: step, log: log}
}

// Increment raises the global volume by one step.
func (c *Controller) Increment() {
	c.log.Info("Incrementing global volume")
	if err := c.mixer.Adjust(c.step); err != nil {
		c.log.Errorf("Volume up failed: %v", err)
	}
}

// Decrement lowers the global volume by one step.
func (c *Controller) Decrement() {
	c.log.Info("Decrementing global volume")
	if err := c.mixer.Adjust(-c.step); err != nil {
		c.log.Errorf("Volume down failed: %v", err)
	}
}

// ToggleMute mutes or unmutes the output.
func (c *Controller) ToggleMute() {
	if err := c.mixer.ToggleMute(); err != nil {
		c.log.Errorf("Mute toggle failed: %v", err)
		return
	}
	c.log.Info("Toggling mute")
}
