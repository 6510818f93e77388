package store

import (
	"io"

	"github.com/simplething-io/simplething-app/climate"
	"github.com/simplething-io/simplething-app/hardware"
)

// Store describes a persistent storage engine for simplething-app information.
type Store interface {
	HardwareConfig() (hardware.Config, error)
	PutHardwareConfig(h hardware.Config) error

	// LEDNumber is the persisted LED property. It survives restarts so the
	// LED can be restored to its last commanded state; a store with no value
	// yet reports 0.
	LEDNumber() (int, error)
	PutLEDNumber(n int) error

	// PutReading appends a climate reading to the history.
	PutReading(r climate.Reading) error

	// Readings returns up to limit readings, newest first.
	Readings(limit int) ([]climate.Reading, error)

	io.Closer
}
