package patterns

import (
	"sort"

	"github.com/blackwell-systems/navwatch/internal/events"
)

// ItemCount is an item id with its number of events.
type ItemCount struct {
	ItemID string `json:"item_id"`
	Count  int    `json:"count"`
}

// Counts returns the number of events per item.
func Counts(history []events.InteractionEvent) map[string]int {
	counts := make(map[string]int)
	for _, e := range history {
		counts[e.ItemID]++
	}
	return counts
}

// TopItems returns up to n items ordered by descending event count, ties
// broken by item id.
func TopItems(history []events.InteractionEvent, n int) []ItemCount {
	counts := Counts(history)
	out := make([]ItemCount, 0, len(counts))
	for id, c := range counts {
		out = append(out, ItemCount{ItemID: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ItemID < out[j].ItemID
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ActionShare returns the fraction of events that used the given action.
// It is zero for an empty history.
func ActionShare(history []events.InteractionEvent, action events.Action) float64 {
	if len(history) == 0 {
		return 0
	}
	n := 0
	for _, e := range history {
		if e.Action == action {
			n++
		}
	}
	return float64(n) / float64(len(history))
}
