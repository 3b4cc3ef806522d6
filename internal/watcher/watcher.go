// Package watcher periodically re-evaluates an actor's navigation insights
// and emits alerts when new ones appear.
package watcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/insights"
	"github.com/blackwell-systems/navwatch/internal/navigator"
)

// Source supplies stored events and dismissals.
type Source interface {
	EventsSince(actor string, since time.Time) ([]events.InteractionEvent, error)
	DismissedInsights(actor string) (map[string]bool, error)
}

// WatchState captures one evaluation of an actor's insights.
type WatchState struct {
	Timestamp  time.Time
	EventCount int
	Insights   []insights.Insight
	Dismissed  map[string]bool
}

// Alert represents a notable change detected by the watcher.
type Alert struct {
	Level     string // "info", "warning"
	Title     string
	Message   string
	InsightID string
	Time      time.Time
}

// Config describes what a Watcher evaluates.
type Config struct {
	Actor     string
	Context   events.Context
	Catalog   catalog.Catalog
	Interval  time.Duration
	Retention time.Duration

	// NewEngine builds the engine each cycle is evaluated with.
	NewEngine func() *navigator.Engine
	Clock     func() time.Time
	Logger    *zap.Logger
}

// Watcher re-evaluates insights at a regular interval and emits alerts when
// notable changes are detected.
type Watcher struct {
	cfg           Config
	source        Source
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher reading from source.
func New(source Source, cfg Config, alertFn func(Alert)) *Watcher {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Retention <= 0 {
		cfg.Retention = events.DefaultRetention
	}
	if cfg.NewEngine == nil {
		clock := cfg.Clock
		cfg.NewEngine = func() *navigator.Engine {
			return navigator.New(navigator.Options{Clock: clock})
		}
	}
	return &Watcher{
		cfg:           cfg,
		source:        source,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	initial, err := w.Snapshot()
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial
	w.cfg.Logger.Info("watching",
		zap.String("actor", w.cfg.Actor),
		zap.Duration("interval", w.cfg.Interval),
		zap.Int("insights", len(initial.Insights)),
	)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.cfg.Logger.Info("watch stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check() {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check() []Alert {
	curr, err := w.Snapshot()
	if err != nil {
		w.cfg.Logger.Warn("snapshot failed", zap.Error(err))
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read navigation data: %v", err),
			Time:    w.cfg.Clock(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot loads the actor's retained events into a fresh engine and
// evaluates its insights.
func (w *Watcher) Snapshot() (*WatchState, error) {
	now := w.cfg.Clock()
	evs, err := w.source.EventsSince(w.cfg.Actor, now.Add(-w.cfg.Retention))
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	dismissed, err := w.source.DismissedInsights(w.cfg.Actor)
	if err != nil {
		return nil, fmt.Errorf("loading dismissals: %w", err)
	}

	engine := w.cfg.NewEngine()
	accepted := engine.TrackAll(evs)

	return &WatchState{
		Timestamp:  now,
		EventCount: accepted,
		Insights:   engine.GenerateInsights(w.cfg.Catalog, w.cfg.Context, w.cfg.Actor),
		Dismissed:  dismissed,
	}, nil
}
