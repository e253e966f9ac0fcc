package output

import (
	"github.com/callebjorkell/light-sweep/internal/color"
)

const (
	DriverPeriph = "periph"
	DriverWS281x = "ws281x"
)

type Options struct {
	Driver string

	// Pins for the periph driver, in red, green, blue order.
	Pins      [3]string
	Frequency int

	// Strip settings for the ws281x driver.
	GpioPin    int
	LedCount   int
	Brightness int
}

// Sink drives the duty cycle of the three color channels.
type Sink interface {
	Write(ch color.Channel, duty uint8) error
	Close() error
}
