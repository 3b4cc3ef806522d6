// Package navigator is the public face of the navigation analytics engine.
// An Engine owns the event log of every actor it has seen and answers
// prediction, insight, recommendation, shortcut and search queries from a
// consistent snapshot of that log.
package navigator

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/insights"
	"github.com/blackwell-systems/navwatch/internal/patterns"
	"github.com/blackwell-systems/navwatch/internal/predict"
)

// Options configures an Engine. Zero fields take their defaults.
type Options struct {
	// Clock supplies the engine's notion of now. Defaults to time.Now.
	Clock func() time.Time

	Logger *zap.Logger

	// Retention bounds how long tracked events are kept.
	Retention time.Duration

	Ranker   predict.Config
	Blend    predict.BlendConfig
	Insights insights.Params

	// Detectors overrides the built-in insight detectors.
	Detectors *insights.Engine

	MaxSearchTerms int
}

// DefaultOptions returns options with every heuristic at its stock value.
func DefaultOptions() Options {
	return Options{
		Clock:          time.Now,
		Logger:         zap.NewNop(),
		Retention:      events.DefaultRetention,
		Ranker:         predict.DefaultConfig(),
		Blend:          predict.DefaultBlendConfig(),
		Insights:       insights.DefaultParams(),
		Detectors:      insights.NewEngine(),
		MaxSearchTerms: patterns.DefaultMaxSearchTerms,
	}
}

// Engine tracks interaction events and computes navigation analytics on
// demand. It is safe for concurrent use.
type Engine struct {
	mu  sync.RWMutex
	log *events.Log

	clock     func() time.Time
	logger    *zap.Logger
	ranker    predict.Config
	blend     predict.BlendConfig
	params    insights.Params
	detectors *insights.Engine
	maxTerms  int
}

// New creates an engine. Unset options, including single unset fields of
// the ranker, blender and insight settings, fall back to DefaultOptions.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
	if opts.Retention <= 0 {
		opts.Retention = def.Retention
	}
	opts.Ranker = opts.Ranker.WithDefaults()
	opts.Blend = opts.Blend.WithDefaults()
	opts.Insights = opts.Insights.WithDefaults()
	if opts.Detectors == nil {
		opts.Detectors = def.Detectors
	}
	if opts.MaxSearchTerms <= 0 {
		opts.MaxSearchTerms = def.MaxSearchTerms
	}

	return &Engine{
		log:       events.NewLog(opts.Retention),
		clock:     opts.Clock,
		logger:    opts.Logger,
		ranker:    opts.Ranker,
		blend:     opts.Blend,
		params:    opts.Insights,
		detectors: opts.Detectors,
		maxTerms:  opts.MaxSearchTerms,
	}
}

// Track records an event. Events missing a required field, or carrying an
// unknown action or context, are dropped without error.
func (e *Engine) Track(ev events.InteractionEvent) {
	e.mu.Lock()
	err := e.log.Append(ev, e.clock())
	e.mu.Unlock()

	if err != nil {
		e.logger.Debug("dropping invalid event",
			zap.String("actor", ev.ActorID),
			zap.String("item", ev.ItemID),
			zap.Error(err),
		)
	}
}

// TrackAll records every event in evs and returns how many were accepted.
func (e *Engine) TrackAll(evs []events.InteractionEvent) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	accepted := 0
	for _, ev := range evs {
		if err := e.log.Append(ev, now); err != nil {
			e.logger.Debug("dropping invalid event", zap.Error(err))
			continue
		}
		accepted++
	}
	e.logger.Debug("loaded events",
		zap.Int("accepted", accepted),
		zap.Int("rejected", len(evs)-accepted),
	)
	return accepted
}

// GeneratePredictions ranks the catalog for actor in context ctx as of now.
// Events older than the retention window relative to now are ignored.
func (e *Engine) GeneratePredictions(cat catalog.Catalog, ctx events.Context, actor string, now time.Time) []predict.Prediction {
	history := e.snapshot(actor, now)
	preds := predict.Rank(cat, history, ctx, now, e.ranker)
	e.logger.Debug("generated predictions",
		zap.String("actor", actor),
		zap.Int("history", len(history)),
		zap.Int("predictions", len(preds)),
	)
	return preds
}

// GenerateInsights runs every insight detector over the actor's retained
// history.
func (e *Engine) GenerateInsights(cat catalog.Catalog, ctx events.Context, actor string) []insights.Insight {
	now := e.clock()
	history := e.snapshot(actor, now)
	out := e.detectors.Run(&insights.Input{
		Catalog:   cat,
		Context:   ctx,
		History:   history,
		Sequences: patterns.Mine(history, e.ranker.Signals.SessionGap),
		Now:       now,
		Params:    e.params,
	})
	e.logger.Debug("generated insights",
		zap.String("actor", actor),
		zap.Int("history", len(history)),
		zap.Int("insights", len(out)),
	)
	return out
}

// PersonalizedRecommendations blends the actor's most used items, items
// matching ctx and the current predictions into one list.
func (e *Engine) PersonalizedRecommendations(cat catalog.Catalog, actor string, ctx events.Context) []catalog.Item {
	now := e.clock()
	history := e.snapshot(actor, now)
	preds := predict.Rank(cat, history, ctx, now, e.ranker)
	return predict.Blend(cat, history, ctx, preds, e.blend)
}

// AnalyzeSearchPatterns returns the most frequent meaningful terms across
// the given queries.
func (e *Engine) AnalyzeSearchPatterns(history []string) []string {
	return patterns.FrequentTerms(history, e.maxTerms)
}

// PredictShortcuts mines the actor's sessions for repeated sequences and
// returns them keyed by their joined item ids.
func (e *Engine) PredictShortcuts(actor string) map[string][]string {
	history := e.snapshot(actor, e.clock())
	return predict.Shortcuts(history, e.ranker.Signals.SessionGap)
}

// SearchHistory returns the queries of the actor's retained search events,
// oldest first.
func (e *Engine) SearchHistory(actor string) []string {
	return patterns.SearchQueries(e.snapshot(actor, e.clock()))
}

// Actors lists every actor with retained events.
func (e *Engine) Actors() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Actors()
}

// Len returns the number of retained events across all actors.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Len()
}

func (e *Engine) snapshot(actor string, now time.Time) []events.InteractionEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.log.Snapshot(actor, now)
}
