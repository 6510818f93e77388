package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/simplething-io/simplething-app/hardware"
)

const defaultReadingsLimit = 50

func (s *Server) getClimate(res http.ResponseWriter, req *http.Request) {
	readings, err := s.Store.Readings(1)
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	if len(readings) == 0 {
		respond(res, errors.New("no readings yet"), http.StatusNotFound)
		return
	}

	respond(res, readings[0], http.StatusOK)
}

func (s *Server) getReadings(res http.ResponseWriter, req *http.Request) {
	limit := defaultReadingsLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respond(res, fmt.Errorf("bad limit %q", raw), http.StatusBadRequest)
			return
		}
	}

	readings, err := s.Store.Readings(limit)
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, readings, http.StatusOK)
}

func (s *Server) getHardware(res http.ResponseWriter, req *http.Request) {
	config, err := s.Store.HardwareConfig()
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, config, http.StatusOK)
}

func (s *Server) putHardware(res http.ResponseWriter, req *http.Request) {
	var config hardware.Config
	if err := json.NewDecoder(req.Body).Decode(&config); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	if err := s.Store.PutHardwareConfig(config); err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	if err := s.hardwareManager.Update(config); err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	// the new hardware starts with the LED in its persisted state, like a
	// restart would
	n, err := s.Store.LEDNumber()
	if err == nil {
		if err := s.applyLEDNumber(n); err != nil {
			s.Logger.Warnf("unable to restore LED state: %s", err)
		}
	}

	respond(res, nil, http.StatusNoContent)
}

func (s *Server) getLED(res http.ResponseWriter, req *http.Request) {
	n, err := s.Store.LEDNumber()
	if err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	respond(res, n, http.StatusOK)
}

// putLED writes the LED number property. The value always persists; only 0
// (off) and 9 (on) change the LED itself.
func (s *Server) putLED(res http.ResponseWriter, req *http.Request) {
	var n int
	if err := json.NewDecoder(req.Body).Decode(&n); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	if err := s.Store.PutLEDNumber(n); err != nil {
		respond(res, err, http.StatusInternalServerError)
		return
	}

	if err := s.applyLEDNumber(n); err != nil {
		respond(res, err, http.StatusConflict)
		return
	}

	respond(res, nil, http.StatusNoContent)
}

func (s *Server) setLights(res http.ResponseWriter, req *http.Request) {
	var on bool
	if err := json.NewDecoder(req.Body).Decode(&on); err != nil {
		respond(res, err, http.StatusUnprocessableEntity)
		return
	}

	applied := false
	var applyErr error
	s.hardwareManager.View(func(h hardware.Hardware) {
		light, ok := h.(hardware.BinaryLight)
		if !ok {
			applyErr = hardware.UnsupportedCapability(
				fmt.Errorf("hardware %q has no controllable light", h.Name()))
			return
		}

		applyErr = light.SetLights(on)
		applied = true
	})

	if applyErr != nil {
		respond(res, applyErr, http.StatusConflict)
		return
	}
	if !applied {
		respond(res, errors.New("no hardware configured"), http.StatusConflict)
		return
	}

	respond(res, nil, http.StatusNoContent)
}
