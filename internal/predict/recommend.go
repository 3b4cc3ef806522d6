package predict

import (
	"sort"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/patterns"
)

// Blend merges frequency of use, context relevance and ranked predictions
// into one personalized list. The top cfg.MaxResults ids are resolved
// against the catalog; ids the catalog no longer holds are dropped. Unset
// fields of cfg take their stock values.
func Blend(cat catalog.Catalog, history []events.InteractionEvent, ctx events.Context, preds []Prediction, cfg BlendConfig) []catalog.Item {
	cfg = cfg.WithDefaults()
	scores := make(map[string]float64)

	for _, ic := range patterns.TopItems(history, cfg.TopFrequent) {
		scores[ic.ItemID] += cfg.FrequencyBonus
	}
	for _, it := range cat {
		if it.MatchesContext(ctx) {
			scores[it.ID] += cfg.ContextBonus
		}
	}
	for _, p := range preds {
		scores[p.ItemID] += p.Score * cfg.PredictionWeight
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > cfg.MaxResults {
		ids = ids[:cfg.MaxResults]
	}

	idx := cat.Index()
	out := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := idx[id]; ok {
			out = append(out, it)
		}
	}
	return out
}
