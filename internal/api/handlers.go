package api

import (
	"net/http"

	"github.com/labstack/echo"
)

type stationResponse struct {
	Name  string  `json:"name"`
	Path  string  `json:"path"`
	VFreq float64 `json:"vfreq"`
}

type tuneRequest struct {
	VFreq *float64 `json:"vfreq"`
}

type stepRequest struct {
	Steps *int `json:"steps"`
}

func (h *handlers) status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Tuner.Status())
}

func (h *handlers) stations(c echo.Context) error {
	list := h.Stations.Stations()
	out := make([]stationResponse, len(list))
	for i, s := range list {
		out[i] = stationResponse{Name: s.Name, Path: s.Path, VFreq: s.VFreq}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stations": out,
		"skipped":  h.Stations.Skipped(),
	})
}

func (h *handlers) tune(c echo.Context) error {
	var req tuneRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.VFreq == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "vfreq is required"})
	}
	pos := h.Dial.Set(*req.VFreq)
	h.Log.Debugf("API tune to %g (dial at %g)", *req.VFreq, pos)
	return c.JSON(http.StatusOK, h.Tuner.Status())
}

func (h *handlers) tuneStep(c echo.Context) error {
	var req stepRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Steps == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "steps is required"})
	}
	pos := h.Dial.Step(*req.Steps)
	h.Log.Debugf("API tune %+d steps (dial at %g)", *req.Steps, pos)
	return c.JSON(http.StatusOK, h.Tuner.Status())
}

func (h *handlers) volumeUp(c echo.Context) error {
	h.Volume.Increment()
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *handlers) volumeDown(c echo.Context) error {
	h.Volume.Decrement()
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *handlers) volumeMute(c echo.Context) error {
	h.Volume.ToggleMute()
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
