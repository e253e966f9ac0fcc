package color

import "fmt"

type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels in the order they are written to an output.
var Channels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return "N/A"
}

const packedMask = 0xFFFFFF

// Color is a single RGB value where every channel is a plain byte.
type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromPacked returns the color for a 0xRRGGBB word. Anything above 24 bits is discarded.
func FromPacked(amt uint32) Color {
	c := Color{}
	c.SetPacked(amt)
	return c
}

func (c Color) Get(ch Channel) uint8 {
	switch ch {
	case Red:
		return c.R
	case Green:
		return c.G
	case Blue:
		return c.B
	}
	return 0
}

func (c *Color) Set(ch Channel, value uint8) {
	switch ch {
	case Red:
		c.R = value
	case Green:
		c.G = value
	case Blue:
		c.B = value
	}
}

func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c *Color) SetPacked(amt uint32) {
	amt = amt % (packedMask + 1)
	c.R = uint8((amt & 0xFF0000) >> 16)
	c.G = uint8((amt & 0x00FF00) >> 8)
	c.B = uint8(amt & 0x0000FF)
}

// AddPacked adds amt to the packed value of the color, wrapping around at 24 bits.
func (c *Color) AddPacked(amt uint32) {
	sum := c.Packed() + amt%(packedMask+1)
	c.SetPacked(sum & packedMask)
}

func (c Color) IsBlack() bool {
	return c.Packed() == 0
}

// WithBrightness gets the same color, but with a lower or equal brightness, on a scale from 0-100, where 100 is the
// same as the input.
func (c Color) WithBrightness(light uint32) Color {
	if light >= 100 {
		return c
	}
	if light == 0 {
		return Color{}
	}

	return Color{
		R: uint8(uint32(c.R) * light / 100),
		G: uint8(uint32(c.G) * light / 100),
		B: uint8(uint32(c.B) * light / 100),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Packed())
}
