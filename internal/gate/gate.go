package gate

import (
	"fmt"
	"github.com/stianeikeland/go-rpio/v4"
	"math"
	"periph.io/x/conn/v3/gpio"
	"strconv"
	"strings"
)

const (
	DriverPeriph = "periph"
	DriverRpio   = "rpio"
	DriverADS    = "ads"
)

type Options struct {
	Driver string
	Pin    string
	Invert bool

	Bus       string
	Address   uint16
	Threshold float64
}

// Sensor reports true when it is bright enough that the lights should be off.
type Sensor interface {
	ReadGate() (bool, error)
	Close() error
}

// Pin is a digital light sensor on a periph.io input pin. A high level means bright.
type Pin struct {
	pin gpio.PinIn
}

func NewPin(p gpio.PinIn) (*Pin, error) {
	if err := p.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("unable to configure %v as input: %w", p, err)
	}
	return &Pin{pin: p}, nil
}

func (p *Pin) ReadGate() (bool, error) {
	return p.pin.Read() == gpio.High, nil
}

func (p *Pin) Close() error {
	return p.pin.Halt()
}

type rpioReader interface {
	Read() rpio.State
}

// RpioPin is a digital light sensor read through go-rpio.
type RpioPin struct {
	pin   rpioReader
	close func() error
}

func (p *RpioPin) ReadGate() (bool, error) {
	return p.pin.Read() == rpio.High, nil
}

func (p *RpioPin) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// Analog turns an ADC reading into a gate by comparing it against a threshold in per mille of full scale.
type Analog struct {
	read      func() (float64, error)
	threshold float64
	close     func() error
}

func (a *Analog) ReadGate() (bool, error) {
	raw, err := a.read()
	if err != nil {
		return false, err
	}
	return scale(raw) >= a.threshold, nil
}

func (a *Analog) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// scale maps a raw signed 16 bit ADC value to 0-1000.
func scale(raw float64) float64 {
	return math.Round(raw / 32767.0 * 1000.0)
}

type inverted struct {
	Sensor
}

func (i inverted) ReadGate() (bool, error) {
	bright, err := i.Sensor.ReadGate()
	return !bright, err
}

func withPolarity(s Sensor, invert bool) Sensor {
	if invert {
		return inverted{s}
	}
	return s
}

// bcmNumber parses pin names like "GPIO5" or "5".
func bcmNumber(name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(name), "GPIO"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid pin name %q", name)
	}
	return n, nil
}
