package hardware

import (
	"context"
	"fmt"

	"github.com/simplething-io/simplething-app/climate"
	"github.com/simplething-io/simplething-app/hardware/gpio"
)

// DefaultLEDPin is the physical header position the indicator LED is wired
// to on the reference build.
const DefaultLEDPin = 12

// SimpleThingConfig configures the reference device: an LED on one header
// pin and a DHT22 climate sensor read through an external driver command.
type SimpleThingConfig struct {
	GPIO GPIOConfig `json:"gpio"`

	// LEDPin is the physical (board-numbered) header position of the LED.
	// Zero means DefaultLEDPin.
	LEDPin int `json:"ledPin,omitempty"`

	// SensorCommand overrides the driver command used to read the climate
	// sensor.
	SensorCommand []string `json:"sensorCommand,omitempty"`
}

// GPIOConfig selects the GPIO backend the device drives its pins through.
type GPIOConfig struct {
	// Backend is "rpio", "periph" or "pigpio". Empty means "rpio".
	Backend string `json:"backend,omitempty"`

	// PigpioAddr is the pigpio daemon address, for the "pigpio" backend.
	PigpioAddr string `json:"pigpioAddr,omitempty"`
}

func openGPIO(config GPIOConfig) (gpio.GPIO, error) {
	switch config.Backend {
	case "", "rpio":
		return gpio.OpenRPIO()
	case "periph":
		return gpio.OpenPeriph()
	case "pigpio":
		addr := config.PigpioAddr
		if addr == "" {
			addr = "localhost:8888"
		}
		return gpio.DialPigpio(addr)
	default:
		return nil, fmt.Errorf("unknown gpio backend %q", config.Backend)
	}
}

// SimpleThing is the reference device.
type SimpleThing struct {
	gpio   gpio.GPIO
	ledPin int // BCM
	sensor climate.Sensor
}

var (
	_ Hardware      = &SimpleThing{}
	_ BinaryLight   = &SimpleThing{}
	_ ClimateSensor = &SimpleThing{}
)

// NewSimpleThing opens the configured GPIO backend and puts the LED pin in
// output mode.
func NewSimpleThing(config SimpleThingConfig) (Hardware, error) {
	ledPin := config.LEDPin
	if ledPin == 0 {
		ledPin = DefaultLEDPin
	}

	bcm, err := gpio.BoardPin(ledPin)
	if err != nil {
		return nil, fmt.Errorf("bad LED pin: %w", err)
	}

	g, err := openGPIO(config.GPIO)
	if err != nil {
		return nil, fmt.Errorf("unable to open gpio to setup LED: %w", err)
	}

	return newSimpleThing(g, bcm, &climate.ExecSensor{Command: config.SensorCommand})
}

func newSimpleThing(g gpio.GPIO, ledPin int, sensor climate.Sensor) (*SimpleThing, error) {
	if err := g.SetupOutput(ledPin); err != nil {
		g.Close()
		return nil, fmt.Errorf("unable to put LED pin in output mode: %w", err)
	}

	return &SimpleThing{
		gpio:   g,
		ledPin: ledPin,
		sensor: sensor,
	}, nil
}

func (s *SimpleThing) Name() string {
	return "simplething"
}

// SetLights turns the LED on or off.
func (s *SimpleThing) SetLights(on bool) error {
	if err := s.gpio.Write(s.ledPin, gpio.Level(on)); err != nil {
		return fmt.Errorf("can't drive LED: %w", err)
	}

	return nil
}

// ReadClimate reads the climate sensor.
func (s *SimpleThing) ReadClimate(ctx context.Context) (climate.Reading, error) {
	return s.sensor.Read(ctx)
}

// Close turns the LED off and releases the GPIO backend.
func (s *SimpleThing) Close() error {
	if err := s.SetLights(false); err != nil {
		return fmt.Errorf("unable to turn off LED: %w", err)
	}

	return s.gpio.Close()
}
