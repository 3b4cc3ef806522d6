package predict

import (
	"math"
	"sort"
	"time"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/patterns"
)

// Signals holds the raw scorer output for one actor and query.
type Signals struct {
	Temporal   patterns.Scores
	Contextual patterns.Scores
	Sequential patterns.Scores
	Counts     map[string]int
}

// ComputeSignals runs the three scorers over an actor's history.
func ComputeSignals(history []events.InteractionEvent, ctx events.Context, now time.Time, p patterns.Params) Signals {
	return Signals{
		Temporal:   patterns.Temporal(history, now, p),
		Contextual: patterns.Contextual(history, ctx, p),
		Sequential: patterns.Sequential(history, p),
		Counts:     patterns.Counts(history),
	}
}

// strength converts an accumulator into a per-item rate in [0,1]: the share
// of the item's events (or sequence endings) that carried the signal.
func strength(acc float64, count int, increment float64) float64 {
	if count <= 0 || increment <= 0 || acc <= 0 {
		return 0
	}
	return clamp(acc / (increment * float64(count)))
}

// Rank scores every catalog item against the actor's history and returns
// at most cfg.MaxPredictions predictions above cfg.MinScore, highest first.
// Ties keep catalog order. Unset fields of cfg take their stock values.
func Rank(cat catalog.Catalog, history []events.InteractionEvent, ctx events.Context, now time.Time, cfg Config) []Prediction {
	if len(cat) == 0 {
		return nil
	}
	cfg = cfg.WithDefaults()
	sig := ComputeSignals(history, ctx, now, cfg.Signals)
	inc := cfg.Signals.Increment

	seen := make(map[string]bool, len(cat))
	var out []Prediction
	for _, it := range cat {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true

		count := sig.Counts[it.ID]
		temporal := strength(sig.Temporal[it.ID], count, inc)
		contextual := strength(sig.Contextual[it.ID], count, inc)
		sequential := strength(sig.Sequential[it.ID], count, inc)

		raw := cfg.Weights.Temporal*temporal +
			cfg.Weights.Contextual*contextual +
			cfg.Weights.Sequential*sequential

		var factors []Factor
		if contextual > cfg.FactorThreshold {
			factors = append(factors, FactorContext)
		}
		if temporal > cfg.FactorThreshold {
			factors = append(factors, FactorTime)
		}
		if sequential > cfg.FactorThreshold {
			factors = append(factors, FactorSequence)
		}
		if hint, ok := it.Hint(); ok {
			raw += cfg.Weights.Hint * hint
			factors = append(factors, FactorRecommended)
		}

		score := clamp(raw)
		if score <= cfg.MinScore {
			continue
		}
		out = append(out, Prediction{
			ItemID:         it.ID,
			Score:          score,
			Reason:         reasonFor(factors),
			Confidence:     raw,
			ContextFactors: factors,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > cfg.MaxPredictions {
		out = out[:cfg.MaxPredictions]
	}
	return out
}

// reasonFor picks the explanation for the highest-priority factor present:
// context, then time, then sequence.
func reasonFor(factors []Factor) string {
	has := make(map[Factor]bool, len(factors))
	for _, f := range factors {
		has[f] = true
	}
	switch {
	case has[FactorContext]:
		return ReasonContext
	case has[FactorTime]:
		return ReasonTime
	case has[FactorSequence]:
		return ReasonSequence
	default:
		return ReasonDefault
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
