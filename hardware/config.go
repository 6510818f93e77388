package hardware

import "errors"

// Config selects and configures exactly one device. Device fields are
// pointers so that an absent device is distinguishable from a zero-valued
// configuration.
type Config struct {
	SimpleThing *SimpleThingConfig `json:"simpleThing,omitempty"`
	Simulated   *SimulatedConfig   `json:"simulated,omitempty"`
}

// New builds the device the config selects.
func New(config Config) (Hardware, error) {
	switch {
	case config.SimpleThing != nil && config.Simulated != nil:
		return nil, errors.New("config must select exactly one device")
	case config.SimpleThing != nil:
		return NewSimpleThing(*config.SimpleThing)
	case config.Simulated != nil:
		return NewSimulated(*config.Simulated), nil
	default:
		return nil, errors.New("config doesn't select a device")
	}
}
