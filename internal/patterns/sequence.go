// Package patterns mines usage patterns from an actor's interaction history:
// gap-based sequences, signal scores, item frequencies and search terms.
// Every function here is pure and never consults the item catalog.
package patterns

import (
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/navwatch/internal/events"
)

// DefaultSessionGap is the idle time that closes a sequence.
const DefaultSessionGap = 5 * time.Minute

// MinSequenceLength is the shortest sequence any consumer keeps.
const MinSequenceLength = 2

// ShortcutSeparator joins item ids into a shortcut key.
const ShortcutSeparator = " → "

// Sequence is an ordered run of item ids with no idle gap >= the session gap
// between consecutive entries.
type Sequence []string

// Key returns the item ids joined with ShortcutSeparator.
func (s Sequence) Key() string {
	return strings.Join(s, ShortcutSeparator)
}

// Mine splits one actor's history into sequences. A new sequence starts
// whenever the delta to the previous event is >= gap; sequences shorter than
// MinSequenceLength are dropped. A non-positive gap uses DefaultSessionGap.
func Mine(history []events.InteractionEvent, gap time.Duration) []Sequence {
	if gap <= 0 {
		gap = DefaultSessionGap
	}
	if len(history) == 0 {
		return nil
	}

	sorted := sortedCopy(history)

	var out []Sequence
	current := Sequence{sorted[0].ItemID}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Timestamp.Sub(sorted[i-1].Timestamp) >= gap {
			out = appendIfLong(out, current)
			current = Sequence{}
		}
		current = append(current, sorted[i].ItemID)
	}
	return appendIfLong(out, current)
}

// MineByActor mines a history that may mix several actors. Each actor is
// segmented independently; results follow sorted actor order.
func MineByActor(history []events.InteractionEvent, gap time.Duration) []Sequence {
	grouped := make(map[string][]events.InteractionEvent)
	for _, e := range history {
		grouped[e.ActorID] = append(grouped[e.ActorID], e)
	}
	actors := make([]string, 0, len(grouped))
	for a := range grouped {
		actors = append(actors, a)
	}
	sort.Strings(actors)

	var out []Sequence
	for _, a := range actors {
		out = append(out, Mine(grouped[a], gap)...)
	}
	return out
}

func appendIfLong(out []Sequence, s Sequence) []Sequence {
	if len(s) < MinSequenceLength {
		return out
	}
	return append(out, s)
}

func sortedCopy(history []events.InteractionEvent) []events.InteractionEvent {
	sorted := make([]events.InteractionEvent, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
