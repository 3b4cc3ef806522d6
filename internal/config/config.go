package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/navwatch/internal/insights"
	"github.com/blackwell-systems/navwatch/internal/navigator"
	"github.com/blackwell-systems/navwatch/internal/patterns"
	"github.com/blackwell-systems/navwatch/internal/predict"
)

// Config is the top-level navwatch configuration.
type Config struct {
	CatalogPath string    `mapstructure:"catalog_path"`
	Weights     Weights   `mapstructure:"weights"`
	Signals     Signals   `mapstructure:"signals"`
	Windows     Windows   `mapstructure:"windows"`
	Limits      Limits    `mapstructure:"limits"`
	Recommend   Recommend `mapstructure:"recommend"`
	Insights    Insights  `mapstructure:"insights"`
	Watch       Watch     `mapstructure:"watch"`
	Output      Output    `mapstructure:"output"`
}

// Weights scales each signal in the composite prediction score.
type Weights struct {
	Temporal   float64 `mapstructure:"temporal"`
	Contextual float64 `mapstructure:"contextual"`
	Sequential float64 `mapstructure:"sequential"`
	Hint       float64 `mapstructure:"hint"`
}

// Signals tunes the signal scorers.
type Signals struct {
	Increment       float64       `mapstructure:"increment"`
	TemporalWindow  time.Duration `mapstructure:"temporal_window"`
	FactorThreshold float64       `mapstructure:"factor_threshold"`
}

// Windows bounds event retention and session segmentation.
type Windows struct {
	Retention  time.Duration `mapstructure:"retention"`
	SessionGap time.Duration `mapstructure:"session_gap"`
}

// Limits caps result sizes.
type Limits struct {
	MinScore           float64 `mapstructure:"min_score"`
	MaxPredictions     int     `mapstructure:"max_predictions"`
	MaxInsights        int     `mapstructure:"max_insights"`
	MaxRecommendations int     `mapstructure:"max_recommendations"`
	TopFrequent        int     `mapstructure:"top_frequent"`
	MaxSearchTerms     int     `mapstructure:"max_search_terms"`
}

// Recommend defines the recommendation blend bonuses.
type Recommend struct {
	FrequencyBonus   float64 `mapstructure:"frequency_bonus"`
	ContextBonus     float64 `mapstructure:"context_bonus"`
	PredictionWeight float64 `mapstructure:"prediction_weight"`
}

// Insights defines the insight detector thresholds.
type Insights struct {
	MaxUnused             int           `mapstructure:"max_unused"`
	MinShortcutLength     int           `mapstructure:"min_shortcut_length"`
	ProductivityMinEvents int           `mapstructure:"productivity_min_events"`
	KeyboardRatio         float64       `mapstructure:"keyboard_ratio"`
	AnomalyEvents         int           `mapstructure:"anomaly_events"`
	AnomalyWindow         time.Duration `mapstructure:"anomaly_window"`
	AnomalyExpiry         time.Duration `mapstructure:"anomaly_expiry"`
}

// Watch defines the watch loop settings.
type Watch struct {
	Interval time.Duration `mapstructure:"interval"`
	Notify   bool          `mapstructure:"notify"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog_path", DefaultCatalogPath)
	v.SetDefault("weights.temporal", DefaultWeights.Temporal)
	v.SetDefault("weights.contextual", DefaultWeights.Contextual)
	v.SetDefault("weights.sequential", DefaultWeights.Sequential)
	v.SetDefault("weights.hint", DefaultWeights.Hint)
	v.SetDefault("signals.increment", DefaultSignals.Increment)
	v.SetDefault("signals.temporal_window", DefaultSignals.TemporalWindow)
	v.SetDefault("signals.factor_threshold", DefaultSignals.FactorThreshold)
	v.SetDefault("windows.retention", DefaultWindows.Retention)
	v.SetDefault("windows.session_gap", DefaultWindows.SessionGap)
	v.SetDefault("limits.min_score", DefaultLimits.MinScore)
	v.SetDefault("limits.max_predictions", DefaultLimits.MaxPredictions)
	v.SetDefault("limits.max_insights", DefaultLimits.MaxInsights)
	v.SetDefault("limits.max_recommendations", DefaultLimits.MaxRecommendations)
	v.SetDefault("limits.top_frequent", DefaultLimits.TopFrequent)
	v.SetDefault("limits.max_search_terms", DefaultLimits.MaxSearchTerms)
	v.SetDefault("recommend.frequency_bonus", DefaultRecommend.FrequencyBonus)
	v.SetDefault("recommend.context_bonus", DefaultRecommend.ContextBonus)
	v.SetDefault("recommend.prediction_weight", DefaultRecommend.PredictionWeight)
	v.SetDefault("insights.max_unused", DefaultInsights.MaxUnused)
	v.SetDefault("insights.min_shortcut_length", DefaultInsights.MinShortcutLength)
	v.SetDefault("insights.productivity_min_events", DefaultInsights.ProductivityMinEvents)
	v.SetDefault("insights.keyboard_ratio", DefaultInsights.KeyboardRatio)
	v.SetDefault("insights.anomaly_events", DefaultInsights.AnomalyEvents)
	v.SetDefault("insights.anomaly_window", DefaultInsights.AnomalyWindow)
	v.SetDefault("insights.anomaly_expiry", DefaultInsights.AnomalyExpiry)
	v.SetDefault("watch.interval", DefaultWatch.Interval)
	v.SetDefault("watch.notify", DefaultWatch.Notify)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed with NAVWATCH_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("navwatch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.CatalogPath = expandPath(cfg.CatalogPath)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings that would silently disable a limit or a
// signal.
func (c *Config) Validate() error {
	positive := []struct {
		key string
		val int
	}{
		{"limits.max_predictions", c.Limits.MaxPredictions},
		{"limits.max_insights", c.Limits.MaxInsights},
		{"limits.max_recommendations", c.Limits.MaxRecommendations},
		{"limits.top_frequent", c.Limits.TopFrequent},
		{"limits.max_search_terms", c.Limits.MaxSearchTerms},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.key, p.val)
		}
	}
	if c.Signals.Increment <= 0 {
		return fmt.Errorf("signals.increment must be positive, got %g", c.Signals.Increment)
	}
	if c.Signals.TemporalWindow <= 0 {
		return fmt.Errorf("signals.temporal_window must be positive, got %s", c.Signals.TemporalWindow)
	}
	if c.Windows.Retention <= 0 || c.Windows.SessionGap <= 0 {
		return errors.New("windows.retention and windows.session_gap must be positive")
	}
	if err := c.Ranker().Signals.Validate(); err != nil {
		return fmt.Errorf("signals.temporal_window: %w", err)
	}
	return nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}

// Ranker converts the configuration into prediction ranker settings.
func (c *Config) Ranker() predict.Config {
	return predict.Config{
		Weights: predict.Weights{
			Temporal:   c.Weights.Temporal,
			Contextual: c.Weights.Contextual,
			Sequential: c.Weights.Sequential,
			Hint:       c.Weights.Hint,
		},
		Signals: patterns.Params{
			Increment:      c.Signals.Increment,
			TemporalWindow: c.Signals.TemporalWindow,
			SessionGap:     c.Windows.SessionGap,
		},
		FactorThreshold: c.Signals.FactorThreshold,
		MinScore:        c.Limits.MinScore,
		MaxPredictions:  c.Limits.MaxPredictions,
	}
}

// Blend converts the configuration into recommendation blender settings.
func (c *Config) Blend() predict.BlendConfig {
	return predict.BlendConfig{
		TopFrequent:      c.Limits.TopFrequent,
		FrequencyBonus:   c.Recommend.FrequencyBonus,
		ContextBonus:     c.Recommend.ContextBonus,
		PredictionWeight: c.Recommend.PredictionWeight,
		MaxResults:       c.Limits.MaxRecommendations,
	}
}

// InsightParams converts the configuration into insight detector settings.
func (c *Config) InsightParams() insights.Params {
	return insights.Params{
		MaxInsights:           c.Limits.MaxInsights,
		MaxUnused:             c.Insights.MaxUnused,
		MinShortcutLength:     c.Insights.MinShortcutLength,
		ProductivityMinEvents: c.Insights.ProductivityMinEvents,
		KeyboardRatio:         c.Insights.KeyboardRatio,
		AnomalyEvents:         c.Insights.AnomalyEvents,
		AnomalyWindow:         c.Insights.AnomalyWindow,
		AnomalyExpiry:         c.Insights.AnomalyExpiry,
	}
}

// EngineOptions assembles navigator options from the configuration.
func (c *Config) EngineOptions() navigator.Options {
	return navigator.Options{
		Retention:      c.Windows.Retention,
		Ranker:         c.Ranker(),
		Blend:          c.Blend(),
		Insights:       c.InsightParams(),
		MaxSearchTerms: c.Limits.MaxSearchTerms,
	}
}
