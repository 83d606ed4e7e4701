// Package station builds the registry of tunable stations: the ordered list
// of audio sources laid out along the virtual frequency axis.
package station

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRegistry is returned when there is nothing to tune to.
	ErrEmptyRegistry = errors.New("station: no stations")
	// ErrUnordered is returned when vfreqs decrease along the registry.
	ErrUnordered = errors.New("station: vfreqs must be non-decreasing")
)

// Source identifies a discovered audio file.
type Source struct {
	Path string
	Name string // file name without extension
}

// Channel is a playing station's output. Volume is linear gain in [0,1].
type Channel interface {
	SetVolume(v float64)
	Volume() float64
}

// Playable is an opened station that has not started playing yet.
type Playable interface {
	Play(loop bool) (Channel, error)
}

// Opener opens sources for playback.
type Opener interface {
	Open(src Source) (Playable, error)
}

// Station is one entry on the dial.
type Station struct {
	Source
	VFreq   float64
	Channel Channel
}

// Registry is the immutable, ordered set of stations.
type Registry struct {
	stations []Station
	skipped  int
}

// NewRegistry validates and wraps stations. The slice is copied.
func NewRegistry(stations []Station) (*Registry, error) {
	if len(stations) == 0 {
		return nil, ErrEmptyRegistry
	}
	for i := 1; i < len(stations); i++ {
		if stations[i].VFreq < stations[i-1].VFreq {
			return nil, fmt.Errorf("%w: %q (%g) after %q (%g)", ErrUnordered,
				stations[i].Name, stations[i].VFreq, stations[i-1].Name, stations[i-1].VFreq)
		}
	}
	return &Registry{stations: append([]Station(nil), stations...)}, nil
}

// Len returns the number of stations.
func (r *Registry) Len() int { return len(r.stations) }

// At returns the i-th station.
func (r *Registry) At(i int) Station { return r.stations[i] }

// Stations returns a copy of the stations in registry order.
func (r *Registry) Stations() []Station {
	return append([]Station(nil), r.stations...)
}

// VFreqs returns the station vfreqs in registry order.
func (r *Registry) VFreqs() []float64 {
	out := make([]float64, len(r.stations))
	for i, s := range r.stations {
		out[i] = s.VFreq
	}
	return out
}

// Names returns the station names in registry order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.stations))
	for i, s := range r.stations {
		out[i] = s.Name
	}
	return out
}

// Skipped returns how many sources failed to open during Build.
func (r *Registry) Skipped() int { return r.skipped }

// Assign lays n stations out between min and max. The first station sits on
// min and the last on max; the ones in between are reached by repeatedly
// adding the step to the previous vfreq. A single station sits on min.
func Assign(n int, min, max float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	out[0] = min
	if n == 1 {
		return out
	}
	step := (max - min) / float64(n-1)
	for i := 1; i < n-1; i++ {
		out[i] = out[i-1] + step
	}
	out[n-1] = max
	return out
}
