package output

import (
	"github.com/callebjorkell/light-sweep/internal/color"
	log "github.com/sirupsen/logrus"
)

type wsEngine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

// Strip shows the color on every LED of an addressable strip. Channels are collected until blue, the last channel
// of a frame, has been written and the strip is then rendered once.
type Strip struct {
	ws         wsEngine
	brightness uint32
	pending    color.Color
	shown      color.Color
	rendered   bool
}

func NewStrip(ws wsEngine, brightness int) (*Strip, error) {
	if err := ws.Init(); err != nil {
		return nil, err
	}

	if brightness <= 0 || brightness > 100 {
		brightness = 100
	}

	s := &Strip{
		ws:         ws,
		brightness: uint32(brightness),
	}
	return s, s.render(color.Color{})
}

func (s *Strip) Write(ch color.Channel, duty uint8) error {
	s.pending.Set(ch, duty)
	if ch != color.Blue {
		return nil
	}
	if s.rendered && s.pending == s.shown {
		return nil
	}
	return s.render(s.pending)
}

func (s *Strip) render(c color.Color) error {
	packed := c.WithBrightness(s.brightness).Packed()
	leds := s.ws.Leds(0)
	for i := range leds {
		leds[i] = packed
	}
	if err := s.ws.Render(); err != nil {
		return err
	}

	log.Tracef("Rendered %v", c)
	s.shown = c
	s.rendered = true
	return s.ws.Wait()
}

func (s *Strip) Close() error {
	defer s.ws.Fini()
	return s.render(color.Color{})
}
