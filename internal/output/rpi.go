//go:build pi

package output

import (
	"fmt"
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// New claims the output hardware described by the options.
func New(opts Options) (Sink, error) {
	log.Infof("Initializing %s output", opts.Driver)

	switch opts.Driver {
	case DriverPeriph:
		return newPeriph(opts)
	case DriverWS281x:
		return newWS281x(opts)
	}
	return nil, fmt.Errorf("unknown output driver %q", opts.Driver)
}

func newPeriph(opts Options) (Sink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}

	var pins [3]gpio.PinOut
	for i, name := range opts.Pins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("no such pin %q", name)
		}
		pins[i] = p
	}

	return NewPWM(pins, physic.Frequency(opts.Frequency)*physic.Hertz)
}

func newWS281x(opts Options) (Sink, error) {
	opt := ws.DefaultOptions
	opt.Channels[0].GpioPin = opts.GpioPin
	opt.Channels[0].LedCount = opts.LedCount
	opt.Channels[0].Brightness = 255

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("unable to create ws281x device: %w", err)
	}

	return NewStrip(dev, opts.Brightness)
}
