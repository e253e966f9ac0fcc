//go:build !pi

package output

import (
	"fmt"
	"github.com/callebjorkell/light-sweep/internal/color"
	log "github.com/sirupsen/logrus"
)

type mockEngine struct {
	colors []uint32
}

func (d mockEngine) Init() error {
	return nil
}

func (d mockEngine) Render() error {
	if len(d.colors) > 0 {
		log.Debugf("ws281x: render %06x", d.colors[0])
	}
	return nil
}

func (d mockEngine) Wait() error {
	return nil
}

func (d mockEngine) Fini() {
	fmt.Println("ws281x: Fini")
}

func (d mockEngine) Leds(_ int) []uint32 {
	return d.colors
}

type mockPWM struct {
	current color.Color
}

func (m *mockPWM) Write(ch color.Channel, duty uint8) error {
	m.current.Set(ch, duty)
	if ch == color.Blue {
		log.Debugf("pwm: %v", m.current)
	}
	return nil
}

func (m *mockPWM) Close() error {
	fmt.Println("pwm: Close")
	return nil
}

// New returns a simulated output that logs what would have been shown.
func New(opts Options) (Sink, error) {
	log.Infof("Initializing simulated %s output", opts.Driver)

	switch opts.Driver {
	case DriverPeriph:
		return &mockPWM{}, nil
	case DriverWS281x:
		return NewStrip(mockEngine{colors: make([]uint32, opts.LedCount)}, opts.Brightness)
	}
	return nil, fmt.Errorf("unknown output driver %q", opts.Driver)
}
