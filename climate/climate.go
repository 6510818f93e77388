// Package climate models temperature and humidity readings from a DHT-style
// sensor and the ways of obtaining them.
package climate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reading is a single temperature and humidity measurement.
type Reading struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"` // degrees Celsius
	Humidity    float64   `json:"humidity"`    // relative, percent
}

// Fahrenheit returns the reading's temperature converted to Fahrenheit.
func (r Reading) Fahrenheit() float64 {
	return r.Temperature*9/5 + 32
}

// ParseReading parses the output format of the Adafruit DHT reader scripts,
// e.g. "Temp=23.4*  Humidity=45.6%". The reading's Time is left zero.
func ParseReading(s string) (Reading, error) {
	var reading Reading

	temperatureSet, humiditySet := false, false
	for _, field := range strings.Fields(s) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}

		switch key {
		case "Temp":
			t, err := strconv.ParseFloat(strings.TrimSuffix(value, "*"), 64)
			if err != nil {
				return reading, fmt.Errorf("couldn't parse temperature %q: %w", value, err)
			}
			reading.Temperature = t
			temperatureSet = true
		case "Humidity":
			h, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
			if err != nil {
				return reading, fmt.Errorf("couldn't parse humidity %q: %w", value, err)
			}
			reading.Humidity = h
			humiditySet = true
		}
	}

	if !temperatureSet || !humiditySet {
		return reading, fmt.Errorf("no temperature/humidity pair in %q", s)
	}

	return reading, nil
}
