package source

import (
	"fmt"
	"math/rand/v2"
	"time"

	"streamplot.klederson.com/internal/stream"
)

// walker is a random walk that drifts back toward its start value.
type walker struct {
	key   string
	start float64
	value float64
}

func (w *walker) step(rng *rand.Rand) float64 {
	delta := rng.Float64() - 0.5
	r := rng.Float64()

	switch {
	case r > 0.9:
		w.value += delta * 15
	case r > 0.8:
		if w.start > w.value {
			delta += 0.5
		} else {
			delta -= 0.5
		}
		w.value += delta
	default:
		w.value += delta
	}
	return w.value
}

// RandomWalk generates one sample per walker per round. Walkers are named
// Rand1, Rand2, ... in creation order. Without an interval every poll is a
// round.
type RandomWalk struct {
	rng      *rand.Rand
	walkers  []walker
	cursor   int
	interval time.Duration
	due      time.Time
	now      func() time.Time
}

// NewRandomWalk creates count walkers starting at start. A nil rng uses a
// time-seeded source.
func NewRandomWalk(count int, start float64, rng *rand.Rand) *RandomWalk {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g := &RandomWalk{rng: rng, now: time.Now}
	for i := 0; i < count; i++ {
		g.walkers = append(g.walkers, walker{
			key:   fmt.Sprintf("Rand%d", i+1),
			start: start,
			value: start,
		})
	}
	return g
}

// SetInterval limits the walk to one round per d, whatever the poll rate.
func (g *RandomWalk) SetInterval(d time.Duration) {
	g.interval = d
}

// Next implements stream.SampleSource.
func (g *RandomWalk) Next() (stream.Sample, bool) {
	if g.cursor >= len(g.walkers) {
		g.cursor = 0
		return stream.Sample{}, false
	}
	if g.cursor == 0 && g.interval > 0 {
		now := g.now()
		if now.Before(g.due) {
			return stream.Sample{}, false
		}
		g.due = now.Add(g.interval)
	}
	w := &g.walkers[g.cursor]
	g.cursor++
	return stream.Sample{Key: w.key, Value: w.step(g.rng)}, true
}
