package patterns

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/navwatch/internal/events"
)

// Defaults for the signal scorers.
const (
	DefaultIncrement      = 0.1
	DefaultTemporalWindow = 2 * time.Hour
)

// Params tunes the signal scorers.
type Params struct {
	// Increment is added to an item's accumulator for every matching event
	// or sequence.
	Increment float64

	// TemporalWindow is the hour-of-day distance counted as "around now".
	// Only whole hours are meaningful; see Validate.
	TemporalWindow time.Duration

	// SessionGap closes a sequence.
	SessionGap time.Duration
}

// DefaultParams returns the stock scorer parameters.
func DefaultParams() Params {
	return Params{
		Increment:      DefaultIncrement,
		TemporalWindow: DefaultTemporalWindow,
		SessionGap:     DefaultSessionGap,
	}
}

// WithDefaults returns p with every unset or non-positive field replaced by
// its stock value.
func (p Params) WithDefaults() Params {
	if p.Increment <= 0 {
		p.Increment = DefaultIncrement
	}
	if p.TemporalWindow <= 0 {
		p.TemporalWindow = DefaultTemporalWindow
	}
	if p.SessionGap <= 0 {
		p.SessionGap = DefaultSessionGap
	}
	return p
}

// Validate rejects parameters the scorers cannot honour exactly.
func (p Params) Validate() error {
	if p.TemporalWindow%time.Hour != 0 {
		return fmt.Errorf("temporal window %s is not a whole number of hours", p.TemporalWindow)
	}
	return nil
}

// Scores maps an item id to an unbounded, non-negative affinity accumulator.
type Scores map[string]float64

// Temporal credits every event whose hour-of-day lies within the temporal
// window of now. Hours are compared on a 24-hour circle in now's location,
// so 23:00 and 01:00 are two hours apart.
func Temporal(history []events.InteractionEvent, now time.Time, p Params) Scores {
	scores := make(Scores)
	window := int(p.TemporalWindow / time.Hour)
	current := now.Hour()
	for _, e := range history {
		if hourDistance(e.Timestamp.In(now.Location()).Hour(), current) <= window {
			scores[e.ItemID] += p.Increment
		}
	}
	return scores
}

// Contextual credits every event recorded in the query context.
func Contextual(history []events.InteractionEvent, ctx events.Context, p Params) Scores {
	scores := make(Scores)
	for _, e := range history {
		if e.Context == ctx {
			scores[e.ItemID] += p.Increment
		}
	}
	return scores
}

// Sequential credits the last item of every mined sequence.
func Sequential(history []events.InteractionEvent, p Params) Scores {
	scores := make(Scores)
	for _, seq := range Mine(history, p.SessionGap) {
		scores[seq[len(seq)-1]] += p.Increment
	}
	return scores
}

func hourDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > 12 {
		d = 24 - d
	}
	return d
}
