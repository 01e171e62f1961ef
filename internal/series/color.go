package series

import (
	"fmt"
	"math/rand/v2"
)

// MinChannel is the lowest value any channel of an assigned color takes,
// keeping lines visible on a dark background.
const MinChannel = 50

// Color is an RGB display color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ColorPicker hands out colors to new series.
type ColorPicker interface {
	Pick(key string) Color
}

// RandomColors picks uniformly in [MinChannel, 255] per channel.
type RandomColors struct {
	rng *rand.Rand
}

// NewRandomColors creates a picker. A nil rng uses a time-seeded source.
func NewRandomColors(rng *rand.Rand) *RandomColors {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomColors{rng: rng}
}

func (p *RandomColors) Pick(string) Color {
	return Color{
		R: p.channel(),
		G: p.channel(),
		B: p.channel(),
	}
}

func (p *RandomColors) channel() uint8 {
	return uint8(MinChannel + p.rng.IntN(256-MinChannel))
}
