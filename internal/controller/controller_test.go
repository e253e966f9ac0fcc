package controller

import (
	"context"
	"errors"
	"github.com/callebjorkell/light-sweep/internal/color"
	"github.com/callebjorkell/light-sweep/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type fakeSensor struct {
	readings []bool
	err      error
	reads    int
}

func (s *fakeSensor) ReadGate() (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	r := false
	if s.reads < len(s.readings) {
		r = s.readings[s.reads]
	}
	s.reads++
	return r, nil
}

type fakeSink struct {
	sync.Mutex
	current color.Color
	frames  []color.Color
	writes  int
	failAt  int
	closed  bool
}

func (s *fakeSink) Write(ch color.Channel, duty uint8) error {
	s.Lock()
	defer s.Unlock()

	s.writes++
	if s.failAt > 0 && s.writes >= s.failAt {
		return errors.New("pwm gone")
	}
	s.current.Set(ch, duty)
	if ch == color.Blue {
		s.frames = append(s.frames, s.current)
	}
	return nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSink) last() color.Color {
	s.Lock()
	defer s.Unlock()
	return s.current
}

func TestTick(t *testing.T) {
	sensor := &fakeSensor{}
	sink := &fakeSink{}
	c := New(sweep.NewDefault(), sensor, sink)

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Tick())
	}

	assert.Equal(t, 100, sensor.reads)
	assert.Len(t, sink.frames, 100)
	assert.Equal(t, color.RGB(127, 127, 0), sink.last())
}

func TestTick_Gated(t *testing.T) {
	readings := make([]bool, 0, 120)
	for i := 0; i < 20; i++ {
		readings = append(readings, false)
	}
	for i := 0; i < 50; i++ {
		readings = append(readings, true)
	}
	for i := 0; i < 50; i++ {
		readings = append(readings, false)
	}

	engine := sweep.NewDefault()
	sink := &fakeSink{}
	c := New(engine, &fakeSensor{readings: readings}, sink)

	for i := 0; i < 20; i++ {
		require.NoError(t, c.Tick())
	}
	before := engine.Accumulators()

	for i := 0; i < 50; i++ {
		require.NoError(t, c.Tick())
		assert.Equal(t, color.Color{}, sink.last())
	}
	assert.Equal(t, before, engine.Accumulators())

	require.NoError(t, c.Tick())
	reference := sweep.NewDefault()
	for i := 0; i < 21; i++ {
		reference.Advance()
	}
	assert.Equal(t, reference.Output(), sink.last())
	assert.Equal(t, uint64(21), engine.Ticks())
}

func TestTick_SensorError(t *testing.T) {
	sink := &fakeSink{}
	c := New(sweep.NewDefault(), &fakeSensor{err: errors.New("no pin")}, sink)

	err := c.Tick()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pin")
	assert.Zero(t, sink.writes)
}

func TestTick_WriteErrorIsFatal(t *testing.T) {
	sink := &fakeSink{failAt: 2}
	c := New(sweep.NewDefault(), &fakeSensor{}, sink)

	err := c.Tick()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "green")
	assert.Equal(t, 2, sink.writes)
}

func TestRun_BlackoutOnStop(t *testing.T) {
	sink := &fakeSink{}
	c := New(sweep.NewDefault(), &fakeSensor{}, sink, WithInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- c.Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the loop to stop")
	}
	assert.Equal(t, color.Color{}, sink.last())
	assert.Greater(t, len(sink.frames), 1)
}

func TestRun_StopsOnPlatformError(t *testing.T) {
	sink := &fakeSink{failAt: 10}
	c := New(sweep.NewDefault(), &fakeSensor{}, sink, WithInterval(time.Millisecond))

	select {
	case err := <-runAsync(c):
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the loop to fail")
	}
}

func runAsync(c *Controller) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- c.Run(context.Background())
	}()
	return done
}

func TestWithInterval(t *testing.T) {
	c := New(sweep.NewDefault(), &fakeSensor{}, &fakeSink{}, WithInterval(25*time.Millisecond))
	assert.Equal(t, 25*time.Millisecond, c.interval)

	c = New(sweep.NewDefault(), &fakeSensor{}, &fakeSink{}, WithInterval(0))
	assert.Equal(t, DefaultInterval, c.interval)
}
