package gpio

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"
)

// Pigpio controls GPIO over the pigpio daemon's socket interface.
type Pigpio struct {
	conn net.Conn
	mu   sync.Mutex
}

// compile-time check for whether Pigpio satisfies the GPIO interface
var _ GPIO = &Pigpio{}

// DialPigpio dials into the pigpio socket interface (normally running on port 8888)
func DialPigpio(addr string) (*Pigpio, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("couldn't dial into pigpio socket: %w", err)
	}

	return &Pigpio{conn: conn}, nil
}

// Close closes the underlying pigpio socket interface connection
func (p *Pigpio) Close() error {
	if p.conn == nil {
		return fmt.Errorf("connection is already closed")
	}

	return p.conn.Close()
}

// SetupOutput puts a GPIO pin in output mode.
func (p *Pigpio) SetupOutput(pin int) error {
	if _, err := p.command(cmdModes, uint32(pin), modeOutput); err != nil {
		return fmt.Errorf("unable to set pin %d mode: %w", pin, err)
	}

	return nil
}

// Write sets a GPIO pin to LOW or HIGH.
func (p *Pigpio) Write(pin int, level Level) error {
	var rawLevel uint32
	if level {
		rawLevel = 1
	}

	if _, err := p.command(cmdWrite, uint32(pin), rawLevel); err != nil {
		return fmt.Errorf("unable to write pin %d: %w", pin, err)
	}

	return nil
}

// Read returns the current level of a GPIO pin.
func (p *Pigpio) Read(pin int) (Level, error) {
	res, err := p.command(cmdRead, uint32(pin), 0)
	if err != nil {
		return Low, fmt.Errorf("unable to read pin %d: %w", pin, err)
	}

	return res == 1, nil
}

type cmd struct {
	Cmd uint32
	P1  uint32
	P2  uint32
	Res uint32
}

const (
	cmdModes uint32 = 0
	cmdRead  uint32 = 3
	cmdWrite uint32 = 4

	modeOutput uint32 = 1
)

// command sends a single request to the daemon and returns the result field
// of the response. The daemon reports failures as negative results.
func (p *Pigpio) command(command, p1, p2 uint32) (int32, error) {
	if p.conn == nil {
		return 0, fmt.Errorf("not connected to pigpio socket interface")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	request := cmd{
		Cmd: command,
		P1:  p1,
		P2:  p2,
	}

	if err := binary.Write(p.conn, binary.LittleEndian, request); err != nil {
		return 0, fmt.Errorf("unable to write request to socket: %w", err)
	}

	var response cmd
	if err := binary.Read(p.conn, binary.LittleEndian, &response); err != nil {
		return 0, fmt.Errorf("unable to read response from socket: %w", err)
	}

	res := int32(response.Res)
	if res < 0 {
		return res, fmt.Errorf("pigpio daemon returned status %d", res)
	}

	return res, nil
}
