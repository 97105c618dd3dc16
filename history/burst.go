package history

import (
	"time"

	"github.com/lixenwraith/pixgrid/grid"
)

// DefaultBurstWindow is the gap after which a repeated action starts a new burst
const DefaultBurstWindow = 400 * time.Millisecond

// Coalescer folds a run of repeated actions into one checkpoint
// A burst continues while the same key repeats within Window of the previous
// call and no other history change happened in between
type Coalescer struct {
	Window time.Duration

	key    string
	last   time.Time
	seq    uint64
	active bool
}

// NewCoalescer returns a coalescer with the given window; zero selects the default
func NewCoalescer(window time.Duration) *Coalescer {
	if window <= 0 {
		window = DefaultBurstWindow
	}
	return &Coalescer{Window: window}
}

// Apply checkpoints only at the start of a burst, then runs mutate
// Reports whether a checkpoint was taken
func (b *Coalescer) Apply(s *Stack, g *grid.Grid, key string, now time.Time, mutate func(*grid.Grid)) bool {
	fresh := !b.active ||
		key != b.key ||
		s.seq != b.seq ||
		now.Sub(b.last) > b.Window
	if fresh {
		s.Checkpoint(g)
	}
	mutate(g)

	b.active = true
	b.key = key
	b.last = now
	b.seq = s.seq
	return fresh
}

// Break ends the current burst so the next Apply checkpoints
func (b *Coalescer) Break() {
	b.active = false
}
