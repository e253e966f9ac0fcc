package gate

import (
	"errors"
	"github.com/stianeikeland/go-rpio/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"testing"
)

func TestPin(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO5", Num: 5, L: gpio.Low}
	s, err := NewPin(p)
	require.NoError(t, err)
	assert.Equal(t, gpio.PullDown, p.P)

	bright, err := s.ReadGate()
	require.NoError(t, err)
	assert.False(t, bright)

	p.L = gpio.High
	bright, err = s.ReadGate()
	require.NoError(t, err)
	assert.True(t, bright)
}

type fakeRpio struct {
	state rpio.State
}

func (f *fakeRpio) Read() rpio.State {
	return f.state
}

func TestRpioPin(t *testing.T) {
	f := &fakeRpio{state: rpio.Low}
	closed := false
	s := &RpioPin{pin: f, close: func() error {
		closed = true
		return nil
	}}

	bright, err := s.ReadGate()
	require.NoError(t, err)
	assert.False(t, bright)

	f.state = rpio.High
	bright, err = s.ReadGate()
	require.NoError(t, err)
	assert.True(t, bright)

	require.NoError(t, s.Close())
	assert.True(t, closed)
}

func TestAnalog(t *testing.T) {
	tt := []struct {
		name   string
		raw    float64
		bright bool
	}{
		{"dark", 0, false},
		{"just below", 16000, false},
		{"at threshold", 16384, true},
		{"full scale", 32767, true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			a := &Analog{
				read: func() (float64, error) {
					return tc.raw, nil
				},
				threshold: 500,
			}
			bright, err := a.ReadGate()
			require.NoError(t, err)
			assert.Equal(t, tc.bright, bright)
		})
	}
}

func TestAnalog_Error(t *testing.T) {
	a := &Analog{
		read: func() (float64, error) {
			return 0, errors.New("i2c nack")
		},
		threshold: 500,
	}
	_, err := a.ReadGate()
	assert.Error(t, err)
	assert.NoError(t, a.Close())
}

func TestInverted(t *testing.T) {
	f := &fakeRpio{state: rpio.High}
	s := withPolarity(&RpioPin{pin: f}, true)

	bright, err := s.ReadGate()
	require.NoError(t, err)
	assert.False(t, bright)

	f.state = rpio.Low
	bright, err = s.ReadGate()
	require.NoError(t, err)
	assert.True(t, bright)

	assert.Same(t, s.(inverted).Sensor, withPolarity(s.(inverted).Sensor, false))
}

func TestBcmNumber(t *testing.T) {
	tt := []struct {
		name  string
		input string
		num   int
		valid bool
	}{
		{"gpio prefix", "GPIO5", 5, true},
		{"lower case prefix", "gpio21", 21, true},
		{"bare number", "20", 20, true},
		{"empty", "", 0, false},
		{"header pin name", "P1_29", 0, false},
		{"negative", "-3", 0, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			n, err := bcmNumber(tc.input)
			if !tc.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.num, n)
		})
	}
}
