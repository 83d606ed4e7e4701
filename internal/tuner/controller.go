// Package tuner holds the dial position and applies the crossfade to the
// playing stations.
package tuner

import (
	"sync"

	"github.com/pion/logging"

	"github.com/satindergrewal/dial/internal/crossfade"
	ilog "github.com/satindergrewal/dial/internal/logging"
	"github.com/satindergrewal/dial/internal/station"
)

// StationStatus is one station as seen by the listener.
type StationStatus struct {
	Name   string  `json:"name"`
	VFreq  float64 `json:"vfreq"`
	Volume float64 `json:"volume"`
}

// Status is a snapshot of the tuner.
type Status struct {
	VFreq    float64         `json:"vfreq"`
	Tuned    bool            `json:"tuned"`
	Stations []StationStatus `json:"stations"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithIndicator sets the tuned indicator. Defaults to NoopIndicator.
func WithIndicator(ind Indicator) Option {
	return func(c *Controller) { c.indicator = ind }
}

// WithLocker makes the controller hold l while writing a volume vector, so
// an audio callback holding the same lock never observes a partial vector.
func WithLocker(l sync.Locker) Option {
	return func(c *Controller) { c.output = l }
}

// WithLogger sets the controller's logger.
func WithLogger(log logging.LeveledLogger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller reacts to dial changes. It is safe for concurrent use; events
// are applied one at a time.
type Controller struct {
	reg       *station.Registry
	vfreqs    []float64
	names     []string
	indicator Indicator
	output    sync.Locker
	log       logging.LeveledLogger

	mu      sync.Mutex
	vfreq   float64
	volumes []float64
	tuned   bool
}

// NewController creates a controller for the given registry. Until the first
// event the dial is considered to sit on the first station.
func NewController(reg *station.Registry, opts ...Option) *Controller {
	c := &Controller{
		reg:       reg,
		vfreqs:    reg.VFreqs(),
		names:     reg.Names(),
		indicator: NoopIndicator{},
		log:       ilog.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.vfreq = c.vfreqs[0]
	return c
}

// OnVFreqChanged retunes to vfreq. Callers clamp vfreq to the dial range.
// A failure while applying one event is logged and does not affect later
// events.
func (c *Controller) OnVFreqChanged(vfreq float64) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("Tuning to %g failed: %v", vfreq, r)
		}
	}()

	volumes := crossfade.VolumesFor(vfreq, c.vfreqs)
	tuned := crossfade.Tuned(volumes)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Infof("Virtual frequency changed to %g", vfreq)
	c.apply(volumes)
	c.vfreq = vfreq
	c.volumes = volumes
	c.tuned = tuned
	c.indicator.Set(tuned)

	names, vols := drawRows(c.names, volumes)
	c.log.Debug(names)
	c.log.Debug(vols)
}

func (c *Controller) apply(volumes []float64) {
	if c.output != nil {
		c.output.Lock()
		defer c.output.Unlock()
	}
	for i := 0; i < c.reg.Len(); i++ {
		c.reg.At(i).Channel.SetVolume(volumes[i])
	}
}

// Status returns the last applied state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		VFreq:    c.vfreq,
		Tuned:    c.tuned,
		Stations: make([]StationStatus, len(c.vfreqs)),
	}
	for i := range c.vfreqs {
		st.Stations[i] = StationStatus{Name: c.names[i], VFreq: c.vfreqs[i]}
		if c.volumes != nil {
			st.Stations[i].Volume = c.volumes[i]
		}
	}
	return st
}
