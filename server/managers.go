package server

import (
	"fmt"
	"sync"

	"github.com/simplething-io/simplething-app/hardware"
)

// hardwareManager synchronizes access to the underlying hardware. This is a
// little more complicated than a plain lock around a field since we need to
// close hardware (that is, we can't be passing out hardware and then close it
// while a caller might be using it).
type hardwareManager struct {
	hardware hardware.Hardware
	mu       *sync.RWMutex
}

// Update closes the previous hardware, if any, and replaces it with hardware
// built from the config.
func (h *hardwareManager) Update(config hardware.Config) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hardware != nil {
		h.hardware.Close()
	}

	var err error
	h.hardware, err = hardware.New(config)
	if err != nil {
		h.hardware = nil
		return fmt.Errorf("unable to create new hardware from config: %w", err)
	}

	return nil
}

// View calls fn with the current hardware, holding it open for the duration
// of the call. fn is not called when no hardware is configured.
func (h *hardwareManager) View(fn func(h hardware.Hardware)) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.hardware == nil {
		return
	}

	fn(h.hardware)
}

// Close closes the current hardware, if any.
func (h *hardwareManager) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hardware == nil {
		return nil
	}

	err := h.hardware.Close()
	h.hardware = nil

	return err
}
