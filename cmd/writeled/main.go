// Command writeled drives the indicator LED on board pin 12 from a single
// argument: "Y" turns it on, "N" turns it off. Anything else, including a
// wrong argument count, exits without touching the hardware and without
// output. Scripts invoke it fire-and-forget, so it deliberately stays silent.
package main

import (
	"os"

	"github.com/simplething-io/simplething-app/hardware"
	"github.com/simplething-io/simplething-app/hardware/gpio"
)

func main() {
	if err := run(os.Args[1:], openGPIO); err != nil {
		os.Exit(1)
	}
}

func openGPIO() (gpio.GPIO, error) {
	return gpio.OpenRPIO()
}

func run(args []string, open func() (gpio.GPIO, error)) error {
	if len(args) != 1 {
		return nil
	}

	var level gpio.Level
	switch args[0] {
	case "Y":
		level = gpio.High
	case "N":
		level = gpio.Low
	default:
		return nil
	}

	pin, err := gpio.BoardPin(hardware.DefaultLEDPin)
	if err != nil {
		return err
	}

	g, err := open()
	if err != nil {
		return err
	}
	defer g.Close()

	if err := g.SetupOutput(pin); err != nil {
		return err
	}

	return g.Write(pin, level)
}
