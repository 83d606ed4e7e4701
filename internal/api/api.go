// Package api is the HTTP control surface: tuner status, tuning, global
// volume, plus the audio stream endpoints.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/pion/logging"

	ilog "github.com/satindergrewal/dial/internal/logging"
	"github.com/satindergrewal/dial/internal/station"
	"github.com/satindergrewal/dial/internal/tuner"
)

// Tuner reports the current tuner state.
type Tuner interface {
	Status() tuner.Status
}

// Dial is the tuning position the API moves.
type Dial interface {
	Set(vfreq float64) float64
	Step(n int) float64
}

// Volume receives global volume commands.
type Volume interface {
	Increment()
	Decrement()
	ToggleMute()
}

// Deps are the collaborators behind the routes. Stream and Offer are
// optional; their routes are only registered when set.
type Deps struct {
	Tuner    Tuner
	Dial     Dial
	Volume   Volume
	Stations *station.Registry
	Stream   http.Handler
	Offer    http.Handler

	Log       logging.LeveledLogger
	AccessLog io.Writer // request log output, stdout when nil
}

type handlers struct {
	Deps
}

// NewRouter builds the echo router.
func NewRouter(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = ilog.Discard()
	}
	h := &handlers{Deps: d}

	r := echo.New()
	r.HideBanner = true
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}\n",
		Output: d.AccessLog,
	}))
	r.Use(middleware.Recover())

	router := r.Group("/api")
	router.GET("/status", h.status)
	router.GET("/stations", h.stations)
	router.POST("/tune", h.tune)
	router.POST("/tune/step", h.tuneStep)

	volumeGroup := router.Group("/volume")
	{
		volumeGroup.POST("/up", h.volumeUp)
		volumeGroup.POST("/down", h.volumeDown)
		volumeGroup.POST("/mute", h.volumeMute)
	}

	if d.Stream != nil {
		r.GET("/stream", echo.WrapHandler(d.Stream))
	}
	if d.Offer != nil {
		r.Match([]string{http.MethodPost, http.MethodOptions}, "/offer", echo.WrapHandler(d.Offer))
	}
	return r
}

// Serve runs the router on addr until ctx is cancelled.
func Serve(ctx context.Context, r *echo.Echo, addr string, log logging.LeveledLogger) error {
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		// Close rather than Shutdown: /stream responses never finish on their own.
		server.Close()
	}()

	log.Infof("Control API listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
