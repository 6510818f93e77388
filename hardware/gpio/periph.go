package gpio

import (
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Periph controls GPIO through the periph.io host drivers.
type Periph struct{}

var _ GPIO = &Periph{}

// OpenPeriph loads the periph.io host drivers. It is safe to call more than
// once; periph makes subsequent initializations no-ops.
func OpenPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("couldn't initialize periph host: %w", err)
	}

	return &Periph{}, nil
}

func (p *Periph) pin(pin int) (pgpio.PinIO, error) {
	io := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if io == nil {
		return nil, fmt.Errorf("no GPIO%d on this host", pin)
	}

	return io, nil
}

// SetupOutput puts a GPIO pin in output mode, driving it low.
func (p *Periph) SetupOutput(pin int) error {
	io, err := p.pin(pin)
	if err != nil {
		return err
	}

	if err := io.Out(pgpio.Low); err != nil {
		return fmt.Errorf("couldn't put GPIO%d in output mode: %w", pin, err)
	}

	return nil
}

// Write sets a GPIO pin to LOW or HIGH.
func (p *Periph) Write(pin int, level Level) error {
	io, err := p.pin(pin)
	if err != nil {
		return err
	}

	if err := io.Out(pgpio.Level(level)); err != nil {
		return fmt.Errorf("couldn't write GPIO%d: %w", pin, err)
	}

	return nil
}

// Read returns the current level of a GPIO pin.
func (p *Periph) Read(pin int) (Level, error) {
	io, err := p.pin(pin)
	if err != nil {
		return Low, err
	}

	return Level(io.Read() == pgpio.High), nil
}

// Close is a no-op; periph host drivers stay loaded for the process lifetime.
func (p *Periph) Close() error {
	return nil
}
