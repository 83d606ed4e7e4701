// Package logging builds the process-wide pion logger factory.
//
// Every component asks the factory for a scoped logger so log lines carry
// the component name, and the same factory is handed to the WebRTC stack.
package logging

import (
	"io"
	"os"

	"github.com/pion/logging"
)

// Component scopes.
const (
	ScopeStation = "station"
	ScopeTuner   = "tuner"
	ScopeMixer   = "mixer"
	ScopeInput   = "input"
	ScopeGPIO    = "gpio"
	ScopeAudio   = "audio"
	ScopeStream  = "stream"
	ScopeAPI     = "api"
)

// NewFactory returns a logger factory writing to w (stderr when nil) at
// info level, or debug level when debug is set.
func NewFactory(debug bool, w io.Writer) *logging.DefaultLoggerFactory {
	if w == nil {
		w = os.Stderr
	}
	f := logging.NewDefaultLoggerFactory()
	f.Writer = w
	f.DefaultLogLevel = logging.LogLevelInfo
	if debug {
		f.DefaultLogLevel = logging.LogLevelDebug
	}
	return f
}

// Discard returns a logger that drops everything. Used as the default when
// a component is constructed without a logger.
func Discard() logging.LeveledLogger {
	f := logging.NewDefaultLoggerFactory()
	f.Writer = io.Discard
	f.DefaultLogLevel = logging.LogLevelDisabled
	return f.NewLogger("discard")
}
