package gpio

// Level describes the binary state of a GPIO pin: either LOW or HIGH.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// GPIO is a digital I/O capability. Pins are addressed by their BCM (chip)
// numbers; use BoardPin to translate physical header positions.
type GPIO interface {
	// SetupOutput configures a pin to drive a binary voltage level. It must
	// be called before the first Write to that pin.
	SetupOutput(pin int) error

	// Write sets a pin to LOW or HIGH
	Write(pin int, level Level) error

	// Read returns the current level of a pin
	Read(pin int) (Level, error)

	// Close releases the underlying hardware resources
	Close() error
}
