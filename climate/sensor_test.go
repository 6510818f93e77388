package climate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecSensor(t *testing.T) {
	sensor := &ExecSensor{Command: []string{"echo", "Temp=23.4*  Humidity=45.6%"}}

	reading, err := sensor.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 23.4, reading.Temperature)
	assert.Equal(t, 45.6, reading.Humidity)
	assert.False(t, reading.Time.IsZero())
}

func TestExecSensor_CommandFails(t *testing.T) {
	sensor := &ExecSensor{Command: []string{"false"}}

	_, err := sensor.Read(context.Background())
	assert.Error(t, err)
}

func TestExecSensor_BadOutput(t *testing.T) {
	sensor := &ExecSensor{Command: []string{"echo", "sensor timed out"}}

	_, err := sensor.Read(context.Background())
	assert.Error(t, err)
}

func TestSimulated(t *testing.T) {
	for i := 0; i < 100; i++ {
		reading, err := Simulated{}.Read(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, reading.Temperature, 20.0)
		assert.LessOrEqual(t, reading.Temperature, 40.0)
		assert.GreaterOrEqual(t, reading.Humidity, 1.0)
		assert.LessOrEqual(t, reading.Humidity, 100.0)
		assert.False(t, reading.Time.IsZero())
	}
}
