package controller

import (
	"context"
	"fmt"
	"github.com/callebjorkell/light-sweep/internal/color"
	"github.com/callebjorkell/light-sweep/internal/sweep"
	log "github.com/sirupsen/logrus"
	"time"
)

// DefaultInterval is the time the output needs between duty cycle updates.
const DefaultInterval = 10 * time.Millisecond

// Sensor reports whether it is bright enough that the lights should be off.
type Sensor interface {
	ReadGate() (bool, error)
}

// Sink drives one output channel at a duty cycle from 0 (off) to 255 (fully on).
type Sink interface {
	Write(ch color.Channel, duty uint8) error
	Close() error
}

type Controller struct {
	engine   *sweep.Engine
	sensor   Sensor
	sink     Sink
	interval time.Duration

	lastGate bool
	stalls   uint64
}

type Opt func(*Controller)

func WithInterval(d time.Duration) Opt {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

func New(engine *sweep.Engine, sensor Sensor, sink Sink, opts ...Opt) *Controller {
	c := &Controller{
		engine:   engine,
		sensor:   sensor,
		sink:     sink,
		interval: DefaultInterval,
		lastGate: engine.Gated(),
		stalls:   engine.Stalls(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Tick runs one iteration of the loop: read the sensor, update the gate, step the sweep and write the result.
func (c *Controller) Tick() error {
	bright, err := c.sensor.ReadGate()
	if err != nil {
		return fmt.Errorf("unable to read gate sensor: %w", err)
	}

	if bright != c.lastGate {
		if bright {
			log.Info("Bright enough, turning the lights off.")
		} else {
			log.Infof("Dark again, resuming sweep at %v.", c.engine.Color())
		}
		c.lastGate = bright
	}
	c.engine.SetGate(bright)

	out := c.engine.Step()
	if s := c.engine.Stalls(); s != c.stalls {
		log.Warnf("Sweep has been re-normalized %d times", s)
		c.stalls = s
	}

	return c.write(out)
}

func (c *Controller) write(out color.Color) error {
	for _, ch := range color.Channels {
		if err := c.sink.Write(ch, out.Get(ch)); err != nil {
			return fmt.Errorf("unable to write %v channel: %w", ch, err)
		}
	}
	return nil
}

// Blackout turns all channels off.
func (c *Controller) Blackout() error {
	return c.write(color.Color{})
}

// Run ticks until the context is done or the platform fails. On a clean stop the lights are turned off before
// returning.
func (c *Controller) Run(ctx context.Context) error {
	log.Infof("Starting sweep with a %v interval", c.interval)
	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		if err := c.Tick(); err != nil {
			return err
		}

		select {
		case <-t.C:
			// fall out of the select and do the next tick.
		case <-ctx.Done():
			log.Infof("Stopping sweep after %d ticks", c.engine.Ticks())
			return c.Blackout()
		}
	}
}
