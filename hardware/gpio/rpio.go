package gpio

import (
	"fmt"

	rpio "github.com/stianeikeland/go-rpio/v4"
)

// RPIO controls GPIO directly through /dev/gpiomem memory mapping. It only
// works on the Pi itself, but unlike Pigpio it needs no daemon.
type RPIO struct{}

var _ GPIO = &RPIO{}

// OpenRPIO maps the GPIO registers into memory.
func OpenRPIO() (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("couldn't map gpio memory: %w", err)
	}

	return &RPIO{}, nil
}

// SetupOutput puts a GPIO pin in output mode.
func (r *RPIO) SetupOutput(pin int) error {
	rpio.Pin(pin).Output()
	return nil
}

// Write sets a GPIO pin to LOW or HIGH.
func (r *RPIO) Write(pin int, level Level) error {
	if level {
		rpio.Pin(pin).High()
	} else {
		rpio.Pin(pin).Low()
	}

	return nil
}

// Read returns the current level of a GPIO pin.
func (r *RPIO) Read(pin int) (Level, error) {
	return rpio.Pin(pin).Read() == rpio.High, nil
}

// Close unmaps the GPIO registers.
func (r *RPIO) Close() error {
	return rpio.Close()
}
