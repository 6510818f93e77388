package hardware

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoDevice(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_MultipleDevices(t *testing.T) {
	_, err := New(Config{
		SimpleThing: &SimpleThingConfig{},
		Simulated:   &SimulatedConfig{},
	})
	assert.Error(t, err)
}

func TestNew_Simulated(t *testing.T) {
	h, err := New(Config{Simulated: &SimulatedConfig{}})
	require.NoError(t, err)
	assert.Equal(t, "simulated", h.Name())

	_, ok := h.(BinaryLight)
	assert.True(t, ok)
	_, ok = h.(ClimateSensor)
	assert.True(t, ok)
}

func TestErrUnsupportedCapability_Is(t *testing.T) {
	err := ErrUnsupportedCapability{errors.New("no light")}
	assert.True(t, errors.Is(err, ErrUnsupportedCapability{}))
	assert.False(t, errors.Is(errors.New("no light"), ErrUnsupportedCapability{}))
}
