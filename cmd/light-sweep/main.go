package main

import (
	"context"
	"fmt"
	"github.com/callebjorkell/light-sweep/internal/config"
	"github.com/callebjorkell/light-sweep/internal/controller"
	"github.com/callebjorkell/light-sweep/internal/gate"
	"github.com/callebjorkell/light-sweep/internal/output"
	"github.com/callebjorkell/light-sweep/internal/sweep"
	log "github.com/sirupsen/logrus"
	"io"
	"os"
	"os/signal"
	"syscall"
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	log.SetFormatter(&colorFormatter{})

	if err := RootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func startSweep(configFile string, debug bool) error {
	conf, err := config.Load(context.Background(), configFile)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !debug {
		log.SetLevel(conf.Level())
	}

	sensor, err := gate.New(conf.SensorOptions())
	if err != nil {
		return err
	}
	defer sensor.Close()

	sink, err := output.New(conf.OutputOptions())
	if err != nil {
		return err
	}
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-signalChan:
			log.Infof("Got %v, shutting down...", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	c := controller.New(sweep.NewDefault(), sensor, sink)
	if err := c.Run(ctx); err != nil {
		return err
	}

	log.Info("Done...")
	return nil
}

// trace runs the sweep without any hardware and prints the state every so many ticks.
func trace(w io.Writer, ticks, every int) {
	e := sweep.NewDefault()
	if every <= 0 {
		every = 1
	}

	printState(w, e)
	for i := 1; i <= ticks; i++ {
		e.Advance()
		if i%every == 0 {
			printState(w, e)
		}
	}
}

func printState(w io.Writer, e *sweep.Engine) {
	c := e.Output()
	fmt.Fprintf(w, "%5d %-11v %v, color: %3d %3d %3d (%v)\n",
		e.Ticks(), e.Phase(), e.Accumulators(), c.R, c.G, c.B, c)
}
