package config

import (
	"context"
	"fmt"
	"github.com/callebjorkell/light-sweep/internal/gate"
	"github.com/callebjorkell/light-sweep/internal/output"
	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"os"
)

const (
	defaultSensorPin  = "GPIO5"
	defaultBus        = "I2C1"
	defaultAddress    = 0x48
	defaultThreshold  = 500
	defaultRedPin     = "GPIO21"
	defaultGreenPin   = "GPIO26"
	defaultBluePin    = "GPIO20"
	defaultFrequency  = 200
	defaultStripPin   = 18
	defaultLedCount   = 30
	defaultBrightness = 100
)

type Config struct {
	LogLevel string `yaml:"logLevel" env:"SWEEP_LOG_LEVEL,overwrite"`
	Sensor   struct {
		Driver    string  `yaml:"driver" env:"SWEEP_SENSOR_DRIVER,overwrite"`
		Pin       string  `yaml:"pin" env:"SWEEP_SENSOR_PIN,overwrite"`
		Invert    bool    `yaml:"invert" env:"SWEEP_SENSOR_INVERT,overwrite"`
		Bus       string  `yaml:"bus" env:"SWEEP_SENSOR_BUS,overwrite"`
		Address   uint16  `yaml:"address" env:"SWEEP_SENSOR_ADDRESS,overwrite"`
		Threshold float64 `yaml:"threshold" env:"SWEEP_SENSOR_THRESHOLD,overwrite"`
	} `yaml:"sensor"`
	Output struct {
		Driver     string `yaml:"driver" env:"SWEEP_OUTPUT_DRIVER,overwrite"`
		Red        string `yaml:"red" env:"SWEEP_OUTPUT_RED,overwrite"`
		Green      string `yaml:"green" env:"SWEEP_OUTPUT_GREEN,overwrite"`
		Blue       string `yaml:"blue" env:"SWEEP_OUTPUT_BLUE,overwrite"`
		Frequency  int    `yaml:"frequency" env:"SWEEP_OUTPUT_FREQUENCY,overwrite"`
		GpioPin    int    `yaml:"gpioPin" env:"SWEEP_OUTPUT_GPIO_PIN,overwrite"`
		LedCount   int    `yaml:"ledCount" env:"SWEEP_OUTPUT_LED_COUNT,overwrite"`
		Brightness int    `yaml:"brightness" env:"SWEEP_OUTPUT_BRIGHTNESS,overwrite"`
	} `yaml:"output"`
}

// Load reads the optional configuration file, applies SWEEP_* environment overrides and validates the result.
func Load(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, l envconfig.Lookuper) (*Config, error) {
	var content []byte
	if path != "" {
		log.Debugf("Reading configuration from %s", path)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		content = b
	}

	c := &Config{}
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, err
	}
	if err := envconfig.ProcessWith(ctx, c, l); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return c, c.validate()
}

func Parse(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	if c.LogLevel == "" {
		c.LogLevel = log.InfoLevel.String()
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	s := &c.Sensor
	if s.Driver == "" {
		s.Driver = gate.DriverPeriph
	}
	switch s.Driver {
	case gate.DriverPeriph, gate.DriverRpio:
		if s.Pin == "" {
			s.Pin = defaultSensorPin
		}
	case gate.DriverADS:
		if s.Bus == "" {
			s.Bus = defaultBus
		}
		if s.Address == 0 {
			s.Address = defaultAddress
		}
		if s.Threshold <= 0 {
			s.Threshold = defaultThreshold
		}
		if s.Threshold > 1000 {
			return fmt.Errorf("sensor threshold must be at most 1000, got %v", s.Threshold)
		}
	default:
		return fmt.Errorf("unknown sensor driver %q", s.Driver)
	}

	o := &c.Output
	if o.Driver == "" {
		o.Driver = output.DriverPeriph
	}
	switch o.Driver {
	case output.DriverPeriph:
		if o.Red == "" {
			o.Red = defaultRedPin
		}
		if o.Green == "" {
			o.Green = defaultGreenPin
		}
		if o.Blue == "" {
			o.Blue = defaultBluePin
		}
		if o.Red == o.Green || o.Green == o.Blue || o.Red == o.Blue {
			return fmt.Errorf("each color needs its own pin, got %s/%s/%s", o.Red, o.Green, o.Blue)
		}
		if o.Frequency <= 0 {
			o.Frequency = defaultFrequency
		}
	case output.DriverWS281x:
		if o.GpioPin <= 0 {
			o.GpioPin = defaultStripPin
		}
		if o.LedCount <= 0 {
			o.LedCount = defaultLedCount
		}
	default:
		return fmt.Errorf("unknown output driver %q", o.Driver)
	}
	if o.Brightness <= 0 {
		o.Brightness = defaultBrightness
	}
	if o.Brightness > 100 {
		return fmt.Errorf("output brightness must be at most 100, got %d", o.Brightness)
	}

	return nil
}

func (c Config) Level() log.Level {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

func (c Config) SensorOptions() gate.Options {
	return gate.Options{
		Driver:    c.Sensor.Driver,
		Pin:       c.Sensor.Pin,
		Invert:    c.Sensor.Invert,
		Bus:       c.Sensor.Bus,
		Address:   c.Sensor.Address,
		Threshold: c.Sensor.Threshold,
	}
}

func (c Config) OutputOptions() output.Options {
	return output.Options{
		Driver:     c.Output.Driver,
		Pins:       [3]string{c.Output.Red, c.Output.Green, c.Output.Blue},
		Frequency:  c.Output.Frequency,
		GpioPin:    c.Output.GpioPin,
		LedCount:   c.Output.LedCount,
		Brightness: c.Output.Brightness,
	}
}
