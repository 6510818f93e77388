package hardware

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/simplething-io/simplething-app/climate"
)

// SimulatedConfig configures the simulated device. It has no knobs yet but
// is kept as a struct so the config shape matches the other devices.
type SimulatedConfig struct{}

// Simulated stands in for real hardware: LED transitions are printed and
// climate readings are fabricated.
type Simulated struct {
	out    io.Writer
	sensor climate.Sensor
}

var (
	_ Hardware      = &Simulated{}
	_ BinaryLight   = &Simulated{}
	_ ClimateSensor = &Simulated{}
)

// NewSimulated creates a simulated device printing to standard output.
func NewSimulated(config SimulatedConfig) *Simulated {
	return &Simulated{
		out:    os.Stdout,
		sensor: climate.Simulated{},
	}
}

func (s *Simulated) Name() string {
	return "simulated"
}

// SetLights prints the LED transition.
func (s *Simulated) SetLights(on bool) error {
	state := "OFF"
	if on {
		state = "ON"
	}

	_, err := fmt.Fprintf(s.out, "LED turn %s\n", state)

	return err
}

// ReadClimate fabricates a plausible reading.
func (s *Simulated) ReadClimate(ctx context.Context) (climate.Reading, error) {
	return s.sensor.Read(ctx)
}

func (s *Simulated) Close() error {
	return nil
}
