package sweep

import "github.com/callebjorkell/light-sweep/internal/color"

// Phase of the sweep. In every phase one channel drains towards zero, the next channel rises by the same amount and
// the remaining channel is held at zero.
type Phase int

const (
	RedToGreen Phase = iota
	GreenToBlue
	BlueToRed
)

func (p Phase) String() string {
	switch p {
	case RedToGreen:
		return "red->green"
	case GreenToBlue:
		return "green->blue"
	case BlueToRed:
		return "blue->red"
	}
	return "N/A"
}

func (p Phase) Next() Phase {
	return (p + 1) % 3
}

func (p Phase) Drain() color.Channel {
	return color.Channels[p]
}

func (p Phase) Rise() color.Channel {
	return color.Channels[(p+1)%3]
}

func (p Phase) Pinned() color.Channel {
	return color.Channels[(p+2)%3]
}

// drainingPhase returns the phase in which the given channel is the one draining.
func drainingPhase(ch color.Channel) Phase {
	switch ch {
	case color.Green:
		return GreenToBlue
	case color.Blue:
		return BlueToRed
	}
	return RedToGreen
}
