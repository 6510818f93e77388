package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplething-io/simplething-app/climate"
	"github.com/simplething-io/simplething-app/hardware"
	"github.com/simplething-io/simplething-app/store"
)

// fakeHardware records light transitions and serves canned readings.
type fakeHardware struct {
	mu      sync.Mutex
	lights  []bool
	reading climate.Reading
	closed  bool
}

var (
	_ hardware.Hardware      = &fakeHardware{}
	_ hardware.BinaryLight   = &fakeHardware{}
	_ hardware.ClimateSensor = &fakeHardware{}
)

func (f *fakeHardware) Name() string { return "fake" }

func (f *fakeHardware) SetLights(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lights = append(f.lights, on)
	return nil
}

func (f *fakeHardware) ReadClimate(ctx context.Context) (climate.Reading, error) {
	return f.reading, nil
}

func (f *fakeHardware) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeHardware) lightHistory() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	history := make([]bool, len(f.lights))
	copy(history, f.lights)
	return history
}

// lightsOnly is hardware with no climate sensor.
type lightsOnly struct{}

func (l *lightsOnly) Name() string { return "lights-only" }

func (l *lightsOnly) SetLights(on bool) error { return nil }

func (l *lightsOnly) Close() error { return nil }

func newTestServer(t *testing.T, h hardware.Hardware) (*Server, *fakeHardware) {
	t.Helper()

	st, err := store.OpenBadger(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := &Server{Store: st, Logger: logger}
	require.NoError(t, s.init())

	fake, _ := h.(*fakeHardware)
	s.hardwareManager.hardware = h

	return s, fake
}

func TestPutLED(t *testing.T) {
	s, fake := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	s.putLED(rec, httptest.NewRequest(http.MethodPut, "/led", strings.NewReader("9")))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []bool{true}, fake.lightHistory())

	rec = httptest.NewRecorder()
	s.putLED(rec, httptest.NewRequest(http.MethodPut, "/led", strings.NewReader("0")))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []bool{true, false}, fake.lightHistory())

	n, err := s.Store.LEDNumber()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPutLED_OtherValuesOnlyPersist(t *testing.T) {
	s, fake := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	s.putLED(rec, httptest.NewRequest(http.MethodPut, "/led", strings.NewReader("5")))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, fake.lightHistory())

	n, err := s.Store.LEDNumber()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPutLED_BadBody(t *testing.T) {
	s, fake := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	s.putLED(rec, httptest.NewRequest(http.MethodPut, "/led", strings.NewReader("on")))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, fake.lightHistory())
}

func TestGetLED(t *testing.T) {
	s, _ := newTestServer(t, &fakeHardware{})
	require.NoError(t, s.Store.PutLEDNumber(9))

	rec := httptest.NewRecorder()
	s.getLED(rec, httptest.NewRequest(http.MethodGet, "/led", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9\n", rec.Body.String())
}

func TestSetLights(t *testing.T) {
	s, fake := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	s.setLights(rec, httptest.NewRequest(http.MethodPost, "/rpc/setLights", strings.NewReader("true")))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []bool{true}, fake.lightHistory())
}

func TestSetLights_NoHardware(t *testing.T) {
	s, _ := newTestServer(t, &fakeHardware{})
	s.hardwareManager.hardware = nil

	rec := httptest.NewRecorder()
	s.setLights(rec, httptest.NewRequest(http.MethodPost, "/rpc/setLights", strings.NewReader("true")))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetClimate(t *testing.T) {
	s, _ := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	s.getClimate(rec, httptest.NewRequest(http.MethodGet, "/climate", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, s.Store.PutReading(climate.Reading{Temperature: 23.4, Humidity: 45.6}))

	rec = httptest.NewRecorder()
	s.getClimate(rec, httptest.NewRequest(http.MethodGet, "/climate", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"temperature":23.4`)
}

func TestGetReadings_BadLimit(t *testing.T) {
	s, _ := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	s.getReadings(rec, httptest.NewRequest(http.MethodGet, "/readings?limit=lots", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	s.getReadings(rec, httptest.NewRequest(http.MethodGet, "/readings?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutHardware(t *testing.T) {
	s, fake := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	body := `{"simulated":{}}`
	s.putHardware(rec, httptest.NewRequest(http.MethodPut, "/hardware", strings.NewReader(body)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// the previous hardware is closed and replaced
	assert.True(t, fake.closed)

	config, err := s.Store.HardwareConfig()
	require.NoError(t, err)
	assert.NotNil(t, config.Simulated)
}

func TestPutHardware_BadBody(t *testing.T) {
	s, _ := newTestServer(t, &fakeHardware{})

	rec := httptest.NewRecorder()
	s.putHardware(rec, httptest.NewRequest(http.MethodPut, "/hardware", strings.NewReader("{")))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestScan(t *testing.T) {
	s, _ := newTestServer(t, &fakeHardware{
		reading: climate.Reading{Temperature: 30, Humidity: 60},
	})

	require.NoError(t, s.scan(context.Background()))

	readings, err := s.Store.Readings(10)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 30.0, readings[0].Temperature)
}

func TestScan_NoSensor(t *testing.T) {
	s, _ := newTestServer(t, &fakeHardware{})
	s.hardwareManager.hardware = &lightsOnly{}

	require.NoError(t, s.scan(context.Background()))

	readings, err := s.Store.Readings(10)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestApplyLEDNumber(t *testing.T) {
	s, fake := newTestServer(t, &fakeHardware{})

	require.NoError(t, s.applyLEDNumber(9))
	require.NoError(t, s.applyLEDNumber(0))
	require.NoError(t, s.applyLEDNumber(3))

	assert.Equal(t, []bool{true, false}, fake.lightHistory())
}
