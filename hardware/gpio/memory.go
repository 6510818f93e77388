package gpio

import (
	"fmt"
	"sync"
)

// Memory is an in-process GPIO implementation backed by a map. It exists so
// that devices can be exercised without hardware; it records every write for
// inspection.
type Memory struct {
	mu      sync.Mutex
	outputs map[int]bool
	levels  map[int]Level
	writes  []MemoryWrite
	closed  bool
}

var _ GPIO = &Memory{}

// MemoryWrite is a single recorded Write call.
type MemoryWrite struct {
	Pin   int
	Level Level
}

// NewMemory creates an in-process GPIO with no configured pins.
func NewMemory() *Memory {
	return &Memory{
		outputs: map[int]bool{},
		levels:  map[int]Level{},
	}
}

// SetupOutput marks a pin as an output.
func (m *Memory) SetupOutput(pin int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("gpio is closed")
	}

	m.outputs[pin] = true

	return nil
}

// Write records the level for a pin. Writing a pin that wasn't configured as
// an output is an error, unlike on real hardware where it silently drives
// whatever mode the pin was left in.
func (m *Memory) Write(pin int, level Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("gpio is closed")
	}

	if !m.outputs[pin] {
		return fmt.Errorf("pin %d is not configured as an output", pin)
	}

	m.levels[pin] = level
	m.writes = append(m.writes, MemoryWrite{Pin: pin, Level: level})

	return nil
}

// Read returns the last level written to a pin. Unwritten pins read LOW.
func (m *Memory) Read(pin int) (Level, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Low, fmt.Errorf("gpio is closed")
	}

	return m.levels[pin], nil
}

// Close marks the GPIO closed; all later calls fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true

	return nil
}

// Writes returns every Write recorded so far, in order.
func (m *Memory) Writes() []MemoryWrite {
	m.mu.Lock()
	defer m.mu.Unlock()

	writes := make([]MemoryWrite, len(m.writes))
	copy(writes, m.writes)

	return writes
}
