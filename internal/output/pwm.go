package output

import (
	"errors"
	"fmt"
	"github.com/callebjorkell/light-sweep/internal/color"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// PWM drives one periph.io pin per color channel.
type PWM struct {
	pins [3]gpio.PinOut
	freq physic.Frequency
	last [3]int
}

func NewPWM(pins [3]gpio.PinOut, freq physic.Frequency) (*PWM, error) {
	p := &PWM{
		pins: pins,
		freq: freq,
		last: [3]int{-1, -1, -1},
	}

	for _, ch := range color.Channels {
		if err := p.Write(ch, 0); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Write sets the duty cycle of a channel. Writing the same duty twice in a row does not touch the hardware.
func (p *PWM) Write(ch color.Channel, duty uint8) error {
	if p.last[ch] == int(duty) {
		return nil
	}

	pin := p.pins[ch]
	if err := pin.PWM(toDuty(duty), p.freq); err != nil {
		return fmt.Errorf("pwm on %v: %w", pin, err)
	}
	p.last[ch] = int(duty)

	log.Tracef("%v -> %d", ch, duty)
	return nil
}

func (p *PWM) Close() error {
	var errs []error
	for _, pin := range p.pins {
		if err := pin.Out(gpio.Low); err != nil {
			errs = append(errs, err)
		}
		if err := pin.Halt(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// toDuty maps a 0-255 duty onto periph's duty range.
func toDuty(duty uint8) gpio.Duty {
	return gpio.Duty(int64(duty) * int64(gpio.DutyMax) / 255)
}
