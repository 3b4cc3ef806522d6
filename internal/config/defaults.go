// Package config provides configuration loading and defaults for navwatch.
package config

import (
	"time"

	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/insights"
	"github.com/blackwell-systems/navwatch/internal/patterns"
	"github.com/blackwell-systems/navwatch/internal/predict"
)

// DefaultConfigDir is the default location for navwatch configuration.
const DefaultConfigDir = "~/.config/navwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "navwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultCatalogPath is where the navigable item catalog is read from.
const DefaultCatalogPath = "~/.config/navwatch/catalog.yaml"

var (
	stockRanker   = predict.DefaultConfig()
	stockBlend    = predict.DefaultBlendConfig()
	stockInsights = insights.DefaultParams()
)

// DefaultWeights holds the default composite score weights.
var DefaultWeights = Weights{
	Temporal:   stockRanker.Weights.Temporal,
	Contextual: stockRanker.Weights.Contextual,
	Sequential: stockRanker.Weights.Sequential,
	Hint:       stockRanker.Weights.Hint,
}

// DefaultSignals holds the default signal scorer settings.
var DefaultSignals = Signals{
	Increment:       stockRanker.Signals.Increment,
	TemporalWindow:  stockRanker.Signals.TemporalWindow,
	FactorThreshold: stockRanker.FactorThreshold,
}

// DefaultWindows holds the default retention and session windows.
var DefaultWindows = Windows{
	Retention:  events.DefaultRetention,
	SessionGap: stockRanker.Signals.SessionGap,
}

// DefaultLimits holds the default result limits.
var DefaultLimits = Limits{
	MinScore:           stockRanker.MinScore,
	MaxPredictions:     stockRanker.MaxPredictions,
	MaxInsights:        stockInsights.MaxInsights,
	MaxRecommendations: stockBlend.MaxResults,
	TopFrequent:        stockBlend.TopFrequent,
	MaxSearchTerms:     patterns.DefaultMaxSearchTerms,
}

// DefaultRecommend holds the default recommendation blend bonuses.
var DefaultRecommend = Recommend{
	FrequencyBonus:   stockBlend.FrequencyBonus,
	ContextBonus:     stockBlend.ContextBonus,
	PredictionWeight: stockBlend.PredictionWeight,
}

// DefaultInsights holds the default insight detector thresholds.
var DefaultInsights = Insights{
	MaxUnused:             stockInsights.MaxUnused,
	MinShortcutLength:     stockInsights.MinShortcutLength,
	ProductivityMinEvents: stockInsights.ProductivityMinEvents,
	KeyboardRatio:         stockInsights.KeyboardRatio,
	AnomalyEvents:         stockInsights.AnomalyEvents,
	AnomalyWindow:         stockInsights.AnomalyWindow,
	AnomalyExpiry:         stockInsights.AnomalyExpiry,
}

// DefaultWatch holds the default watch loop settings.
var DefaultWatch = Watch{
	Interval: 5 * time.Minute,
	Notify:   true,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
