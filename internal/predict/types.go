// Package predict ranks navigable items from mined usage signals and blends
// them into personalized recommendations and shortcut candidates.
package predict

import "github.com/blackwell-systems/navwatch/internal/patterns"

// Factor is a tag explaining why a prediction scored above zero.
type Factor string

const (
	FactorTime        Factor = "frequently_used_at_this_time"
	FactorContext     Factor = "relevant_to_current_context"
	FactorSequence    Factor = "follows_usage_pattern"
	FactorRecommended Factor = "ai_recommended"
)

// Human-readable prediction reasons, in priority order.
const (
	ReasonContext  = "Frequently used in your current context"
	ReasonTime     = "Often used around this time of day"
	ReasonSequence = "Usually follows your recent activity"
	ReasonDefault  = "Based on usage patterns"
)

// Prediction is a ranked next-navigation candidate. It is recomputed on
// every call and never persisted.
type Prediction struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`

	// Confidence is the composite score before clamping.
	Confidence     float64  `json:"confidence"`
	ContextFactors []Factor `json:"context_factors"`
}

// HasFactor reports whether f is among the prediction's context factors.
func (p Prediction) HasFactor(f Factor) bool {
	for _, got := range p.ContextFactors {
		if got == f {
			return true
		}
	}
	return false
}

// Weights scales each signal in the composite score.
type Weights struct {
	Temporal   float64
	Contextual float64
	Sequential float64
	Hint       float64
}

// DefaultWeights favours context, with time and sequence weighted equally.
func DefaultWeights() Weights {
	return Weights{
		Temporal:   0.3,
		Contextual: 0.4,
		Sequential: 0.3,
		Hint:       0.2,
	}
}

// Config tunes the prediction ranker.
type Config struct {
	Weights Weights
	Signals patterns.Params

	// FactorThreshold is the per-signal strength above which a context
	// factor tag is attached.
	FactorThreshold float64

	// MinScore excludes predictions scoring at or below it.
	MinScore float64

	MaxPredictions int
}

// DefaultConfig returns the stock ranker configuration.
func DefaultConfig() Config {
	return Config{
		Weights:         DefaultWeights(),
		Signals:         patterns.DefaultParams(),
		FactorThreshold: DefaultFactorThreshold,
		MinScore:        DefaultMinScore,
		MaxPredictions:  DefaultMaxPredictions,
	}
}

// WithDefaults returns c with every unset field replaced by its stock
// value. A zero Weights struct takes the stock weights as a whole so that a
// single weight can still be set to zero. A non-positive MaxPredictions
// takes the stock cap.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Weights == (Weights{}) {
		c.Weights = def.Weights
	}
	c.Signals = c.Signals.WithDefaults()
	if c.FactorThreshold <= 0 {
		c.FactorThreshold = def.FactorThreshold
	}
	if c.MinScore <= 0 {
		c.MinScore = def.MinScore
	}
	if c.MaxPredictions <= 0 {
		c.MaxPredictions = def.MaxPredictions
	}
	return c
}

// BlendConfig tunes the recommendation blender.
type BlendConfig struct {
	// TopFrequent is how many of the actor's most used items get the
	// frequency bonus.
	TopFrequent      int
	FrequencyBonus   float64
	ContextBonus     float64
	PredictionWeight float64
	MaxResults       int
}

// Stock ranker and blender values.
const (
	DefaultFactorThreshold    = 0.5
	DefaultMinScore           = 0.1
	DefaultMaxPredictions     = 10
	DefaultTopFrequent        = 5
	DefaultMaxRecommendations = 8
)

// DefaultBlendConfig returns the stock blender configuration.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{
		TopFrequent:      DefaultTopFrequent,
		FrequencyBonus:   0.4,
		ContextBonus:     0.3,
		PredictionWeight: 0.3,
		MaxResults:       DefaultMaxRecommendations,
	}
}

// WithDefaults returns c with every unset or non-positive field replaced by
// its stock value.
func (c BlendConfig) WithDefaults() BlendConfig {
	def := DefaultBlendConfig()
	if c.TopFrequent <= 0 {
		c.TopFrequent = def.TopFrequent
	}
	if c.FrequencyBonus <= 0 {
		c.FrequencyBonus = def.FrequencyBonus
	}
	if c.ContextBonus <= 0 {
		c.ContextBonus = def.ContextBonus
	}
	if c.PredictionWeight <= 0 {
		c.PredictionWeight = def.PredictionWeight
	}
	if c.MaxResults <= 0 {
		c.MaxResults = def.MaxResults
	}
	return c
}
