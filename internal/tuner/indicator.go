package tuner

// Indicator shows whether the dial sits exactly on a station, typically an
// LED. Implementations must not block.
type Indicator interface {
	Set(on bool)
}

// NoopIndicator is the Indicator used when no hardware is present.
type NoopIndicator struct{}

// Set does nothing.
func (NoopIndicator) Set(bool) {}
