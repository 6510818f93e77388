package climate

import (
	"context"
	"fmt"
	"math/rand"
	"os/exec"
	"time"
)

// Sensor produces climate readings.
type Sensor interface {
	Read(ctx context.Context) (Reading, error)
}

// DefaultSensorCommand reads an AM2302/DHT22 sensor on GPIO4 with the
// Adafruit Python driver.
var DefaultSensorCommand = []string{"python", "AdafruitDHT.py", "2302", "4"}

// ExecSensor reads the sensor by running an external command and parsing its
// standard output. The DHT's bit-banged 1-wire protocol needs tighter timing
// than a Go process can promise, so the actual read is delegated to the
// vendor driver script.
type ExecSensor struct {
	Command []string
}

var _ Sensor = &ExecSensor{}

func (s *ExecSensor) Read(ctx context.Context) (Reading, error) {
	command := s.Command
	if len(command) == 0 {
		command = DefaultSensorCommand
	}

	out, err := exec.CommandContext(ctx, command[0], command[1:]...).Output()
	if err != nil {
		return Reading{}, fmt.Errorf("sensor command failed: %w", err)
	}

	reading, err := ParseReading(string(out))
	if err != nil {
		return Reading{}, fmt.Errorf("couldn't parse sensor output: %w", err)
	}

	reading.Time = time.Now()

	return reading, nil
}

// Simulated fabricates plausible readings for running without a sensor.
type Simulated struct{}

var _ Sensor = Simulated{}

func (Simulated) Read(ctx context.Context) (Reading, error) {
	return Reading{
		Time:        time.Now(),
		Temperature: 20 + rand.Float64()*20,
		Humidity:    1 + rand.Float64()*99,
	}, nil
}
