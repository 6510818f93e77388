package hardware

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplething-io/simplething-app/climate"
)

func TestSimulated_SetLights(t *testing.T) {
	out := &bytes.Buffer{}
	s := &Simulated{out: out, sensor: climate.Simulated{}}

	require.NoError(t, s.SetLights(true))
	require.NoError(t, s.SetLights(false))

	assert.Equal(t, "LED turn ON\nLED turn OFF\n", out.String())
}

func TestSimulated_ReadClimate(t *testing.T) {
	s := NewSimulated(SimulatedConfig{})

	reading, err := s.ReadClimate(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, reading.Temperature)
	assert.False(t, reading.Time.IsZero())
}
