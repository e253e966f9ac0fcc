package sweep

import (
	"fmt"
	"github.com/callebjorkell/light-sweep/internal/color"
	log "github.com/sirupsen/logrus"
)

const (
	// PercInit is the resolution of the sweep. An accumulator at PercInit drives its channel at full duty.
	PercInit = 10000
	// Incr is how much one tick moves the two active accumulators.
	Incr = 50

	maxDuty = 255
)

// ConfigError is returned when an engine is built from constants that cannot produce a clean sweep.
type ConfigError struct {
	PercInit int
	Incr     int
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid sweep configuration (percInit=%d, incr=%d): %s", e.PercInit, e.Incr, e.Reason)
}

type Accumulators struct {
	Red   int
	Green int
	Blue  int
}

func (a Accumulators) get(ch color.Channel) int {
	switch ch {
	case color.Green:
		return a.Green
	case color.Blue:
		return a.Blue
	}
	return a.Red
}

func (a *Accumulators) set(ch color.Channel, v int) {
	switch ch {
	case color.Red:
		a.Red = v
	case color.Green:
		a.Green = v
	case color.Blue:
		a.Blue = v
	}
}

func (a Accumulators) String() string {
	return fmt.Sprintf("red: %5d, green: %5d, blue: %5d", a.Red, a.Green, a.Blue)
}

// Engine owns the sweep state. It is not safe for concurrent use; a single loop is expected to own it.
type Engine struct {
	percInit int
	incr     int

	acc   Accumulators
	phase Phase
	gated bool
	color color.Color

	ticks  uint64
	stalls uint64
}

func NewDefault() *Engine {
	e, err := New(PercInit, Incr)
	if err != nil {
		panic(err)
	}
	return e
}

func New(percInit, incr int) (*Engine, error) {
	if err := validate(percInit, incr); err != nil {
		return nil, err
	}

	e := &Engine{
		percInit: percInit,
		incr:     incr,
		acc:      Accumulators{Red: percInit},
		phase:    RedToGreen,
	}
	e.updateColor()

	return e, nil
}

func validate(percInit, incr int) error {
	reason := ""
	switch {
	case percInit <= 0:
		reason = "resolution must be positive"
	case incr <= 0:
		reason = "increment must be positive"
	case incr > percInit:
		reason = "increment must not exceed the resolution"
	case percInit%incr != 0:
		reason = "increment must evenly divide the resolution"
	}
	if reason != "" {
		return &ConfigError{PercInit: percInit, Incr: incr, Reason: reason}
	}
	return nil
}

// Advance moves the sweep one tick along the current phase, rotating to the next phase once the draining channel is
// empty. The gate is not consulted.
func (e *Engine) Advance() {
	drain, rise := e.phase.Drain(), e.phase.Rise()

	e.acc.set(drain, e.acc.get(drain)-e.incr)
	e.acc.set(rise, e.acc.get(rise)+e.incr)
	e.acc.set(e.phase.Pinned(), 0)

	if e.acc.get(drain) <= 0 {
		e.acc.set(drain, 0)
		e.acc.set(rise, e.percInit)
		e.phase = e.phase.Next()
		log.Debugf("Sweep entering phase %v", e.phase)
	}

	e.ticks++
	e.updateColor()
}

// Step is a single iteration of the control loop: while gated the output is black and the sweep stays where it is,
// otherwise the sweep advances.
func (e *Engine) Step() color.Color {
	if !e.gated {
		e.Advance()
	}
	return e.Output()
}

func (e *Engine) SetGate(bright bool) {
	e.gated = bright
}

func (e *Engine) Gated() bool {
	return e.gated
}

// Output is the color that should currently be shown.
func (e *Engine) Output() color.Color {
	if e.gated {
		return color.Color{}
	}
	return e.color
}

// Color is the color of the sweep regardless of the gate.
func (e *Engine) Color() color.Color {
	return e.color
}

func (e *Engine) Accumulators() Accumulators {
	return e.acc
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// Ticks is the number of times the sweep has advanced.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Stalls is the number of times a state had to be re-normalized.
func (e *Engine) Stalls() uint64 {
	return e.stalls
}

// TicksPerPhase is the number of advances needed to move fully from one channel to the next.
func (e *Engine) TicksPerPhase() int {
	return e.percInit / e.incr
}

// Period is the number of advances in a full trip around the color wheel.
func (e *Engine) Period() int {
	return 3 * e.TicksPerPhase()
}

// Load replaces the accumulators and picks the phase that continues from them. A state that does not belong to any
// phase is re-normalized onto the strongest channel.
func (e *Engine) Load(acc Accumulators) {
	phase, ok := e.phaseOf(acc)
	if !ok {
		e.recover(acc)
		return
	}

	acc.set(phase.Pinned(), 0)
	e.acc = acc
	e.phase = phase
	e.updateColor()
}

func (e *Engine) phaseOf(acc Accumulators) (Phase, bool) {
	var phase Phase
	switch {
	case acc.Red > 0 && acc.Blue <= 0:
		phase = RedToGreen
	case acc.Green > 0 && acc.Red <= 0:
		phase = GreenToBlue
	case acc.Blue > 0 && acc.Green <= 0:
		phase = BlueToRed
	default:
		return 0, false
	}

	drain, rise := acc.get(phase.Drain()), acc.get(phase.Rise())
	if drain > e.percInit || rise < 0 || acc.get(phase.Pinned()) < 0 {
		return 0, false
	}
	if drain+rise != e.percInit {
		return 0, false
	}
	return phase, true
}

func (e *Engine) recover(acc Accumulators) {
	e.stalls++
	log.Warnf("Sweep stalled at %v, re-normalizing (stall %d)", acc, e.stalls)

	strongest := color.Red
	for _, ch := range color.Channels {
		if acc.get(ch) > acc.get(strongest) {
			strongest = ch
		}
	}

	e.acc = Accumulators{}
	e.acc.set(strongest, e.percInit)
	e.phase = drainingPhase(strongest)
	e.updateColor()
}

func (e *Engine) updateColor() {
	for _, ch := range color.Channels {
		e.color.Set(ch, e.duty(e.acc.get(ch)))
	}
}

func (e *Engine) duty(pct int) uint8 {
	if pct <= 0 {
		return 0
	}
	if pct >= e.percInit {
		return maxDuty
	}
	return uint8(maxDuty * pct / e.percInit)
}
