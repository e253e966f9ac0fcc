//go:build !pi

package gate

import (
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

type mockSensor struct {
	sync.Mutex
	bright bool
	sig    chan os.Signal
}

// New returns a simulated light sensor. Sending SIGUSR1 to the process toggles between bright and dark.
func New(opts Options) (Sensor, error) {
	log.Infof("Initializing simulated %s light sensor, toggle with SIGUSR1", opts.Driver)

	m := &mockSensor{
		sig: make(chan os.Signal, 1),
	}
	signal.Notify(m.sig, syscall.SIGUSR1)
	go m.simulate()

	return withPolarity(m, opts.Invert), nil
}

func (m *mockSensor) simulate() {
	for range m.sig {
		m.Lock()
		m.bright = !m.bright
		log.Infof("Simulated sensor bright: %v", m.bright)
		m.Unlock()
	}
}

func (m *mockSensor) ReadGate() (bool, error) {
	m.Lock()
	defer m.Unlock()
	return m.bright, nil
}

func (m *mockSensor) Close() error {
	signal.Stop(m.sig)
	close(m.sig)
	return nil
}
