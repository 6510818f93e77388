package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/simplething-io/simplething-app/climate"
	"github.com/simplething-io/simplething-app/hardware"
	"github.com/simplething-io/simplething-app/store"
)

type Server struct {
	Addr string

	Store  store.Store
	Logger *logrus.Logger

	// ScanInterval is how often the climate sensor is polled. Zero means
	// once a minute.
	ScanInterval time.Duration

	hardwareManager *hardwareManager
}

func (s *Server) Run(ctx context.Context) error {
	if s.ScanInterval == 0 {
		s.ScanInterval = time.Minute
	}

	if err := s.init(); err != nil {
		return fmt.Errorf("unable to initialize: %w", err)
	}
	defer s.hardwareManager.Close()

	mux := httprouter.New()

	mux.HandlerFunc(http.MethodGet, "/climate", s.getClimate)
	mux.HandlerFunc(http.MethodGet, "/readings", s.getReadings)

	mux.HandlerFunc(http.MethodGet, "/hardware", s.getHardware)
	mux.HandlerFunc(http.MethodPut, "/hardware", s.putHardware)

	mux.HandlerFunc(http.MethodGet, "/led", s.getLED)
	mux.HandlerFunc(http.MethodPut, "/led", s.putLED)

	mux.HandlerFunc(http.MethodPost, "/rpc/setLights", s.setLights)

	httpServer := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadTimeout:       time.Second * 15,
		ReadHeaderTimeout: time.Second * 15,
		IdleTimeout:       time.Second * 30,
		MaxHeaderBytes:    4096,
	}

	listenErrs := make(chan error)
	go func() {
		s.Logger.WithField("addr", s.Addr).Info("serving http")
		listenErrs <- httpServer.ListenAndServe()
	}()

	scanCtx, cancelScan := context.WithCancel(ctx)
	defer cancelScan()

	scanErrs := make(chan error)
	go func() {
		s.Logger.WithField("interval", s.ScanInterval).Info("starting scan loop")
		scanErrs <- s.runScan(scanCtx)
	}()

	select {
	case err := <-listenErrs:
		return err
	case err := <-scanErrs:
		httpServer.Shutdown(ctx)
		return err
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	}
}

// init attempts to build hardware from the config in the store and restore
// the LED to its persisted state.
func (s *Server) init() error {
	s.hardwareManager = &hardwareManager{mu: new(sync.RWMutex)}

	config, err := s.Store.HardwareConfig()
	if err != nil {
		s.Logger.Warnf("no hardware config found: %s", err)
		return nil
	}

	h, err := hardware.New(config)
	if err != nil {
		s.Logger.Warnf("unable to setup hardware: %s", err)
		return nil
	}
	s.hardwareManager.hardware = h

	n, err := s.Store.LEDNumber()
	if err != nil {
		s.Logger.Warnf("unable to restore LED state: %s", err)
		return nil
	}
	if err := s.applyLEDNumber(n); err != nil {
		s.Logger.Warnf("unable to restore LED state: %s", err)
	}

	return nil
}

// applyLEDNumber applies the LED number property to the hardware: 0 turns
// the LED off, 9 turns it on, anything else leaves it alone.
func (s *Server) applyLEDNumber(n int) error {
	if n != 0 && n != 9 {
		return nil
	}

	var err error
	s.hardwareManager.View(func(h hardware.Hardware) {
		light, ok := h.(hardware.BinaryLight)
		if !ok {
			err = hardware.UnsupportedCapability(
				fmt.Errorf("hardware %q has no controllable light", h.Name()))
			return
		}

		err = light.SetLights(n == 9)
	})

	return err
}

func (s *Server) runScan(ctx context.Context) error {
	ticker := time.NewTicker(s.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.scan(ctx); err != nil {
				s.Logger.Warnf("scan failed: %s", err)
			}
		}
	}
}

// scan reads the climate sensor once and appends the reading to the store.
// A device without a climate sensor makes the scan a no-op.
func (s *Server) scan(ctx context.Context) error {
	var reading climate.Reading
	var err error
	read := false

	s.hardwareManager.View(func(h hardware.Hardware) {
		sensor, ok := h.(hardware.ClimateSensor)
		if !ok {
			return
		}

		reading, err = sensor.ReadClimate(ctx)
		read = true
	})
	if err != nil {
		return fmt.Errorf("unable to read climate: %w", err)
	}
	if !read {
		return nil
	}

	if err := s.Store.PutReading(reading); err != nil {
		return fmt.Errorf("unable to store reading: %w", err)
	}

	s.Logger.WithFields(logrus.Fields{
		"temperature": reading.Temperature,
		"humidity":    reading.Humidity,
	}).Debug("stored climate reading")

	return nil
}
