//go:build pi

package gate

import (
	"fmt"
	"github.com/grant-carpenter/go-ads"
	log "github.com/sirupsen/logrus"
	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// New claims the light sensor described by the options.
func New(opts Options) (Sensor, error) {
	log.Infof("Initializing %s light sensor", opts.Driver)

	var s Sensor
	var err error
	switch opts.Driver {
	case DriverPeriph:
		s, err = newPeriph(opts.Pin)
	case DriverRpio:
		s, err = newRpio(opts.Pin)
	case DriverADS:
		s, err = newADS(opts)
	default:
		err = fmt.Errorf("unknown sensor driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	return withPolarity(s, opts.Invert), nil
}

func newPeriph(name string) (Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no such pin %q", name)
	}
	return NewPin(p)
}

func newRpio(name string) (Sensor, error) {
	n, err := bcmNumber(name)
	if err != nil {
		return nil, err
	}
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("unable to open gpio memory: %w", err)
	}

	pin := rpio.Pin(n)
	pin.Input()
	pin.PullDown()

	return &RpioPin{pin: pin, close: rpio.Close}, nil
}

func newADS(opts Options) (Sensor, error) {
	if err := ads.HostInit(); err != nil {
		return nil, fmt.Errorf("unable to initialize i2c host: %w", err)
	}

	dev, err := ads.NewADS(opts.Bus, opts.Address, "")
	if err != nil {
		return nil, fmt.Errorf("unable to open ADS on %s@%#x: %w", opts.Bus, opts.Address, err)
	}
	dev.SetConfigGain(ads.ConfigGain2_3)

	return &Analog{
		read: func() (float64, error) {
			v, err := dev.ReadRetry(5)
			if err != nil {
				return 0, err
			}
			return float64(v), nil
		},
		threshold: opts.Threshold,
		close: func() error {
			dev.Close()
			return nil
		},
	}, nil
}
