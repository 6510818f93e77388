package hardware

import (
	"context"

	"github.com/simplething-io/simplething-app/climate"
)

// Hardware defines a common interface for devices simplething-app can run on
//
// Because not all hardware has an indicator LED, or a climate sensor, this is
// a fairly minimal interface. Most of the time this interface should be type
// asserted to a more specific capability. For example, you can assert to the
// BinaryLight interface for LED control, or the ClimateSensor interface for
// temperature and humidity readings.
type Hardware interface {
	Name() string

	// Close releases the device, leaving any lights off.
	Close() error
}

// BinaryLight describes hardware with an LED that can be toggled on/off
type BinaryLight interface {
	// SetLights turns the LED on or off
	SetLights(on bool) error
}

// ClimateSensor describes hardware that can measure temperature and humidity
type ClimateSensor interface {
	ReadClimate(ctx context.Context) (climate.Reading, error)
}

type ErrUnsupportedCapability struct {
	error
}

func (err ErrUnsupportedCapability) Is(target error) bool {
	_, ok := target.(ErrUnsupportedCapability)
	return ok
}

// UnsupportedCapability marks err as an ErrUnsupportedCapability.
func UnsupportedCapability(err error) error {
	return ErrUnsupportedCapability{err}
}
