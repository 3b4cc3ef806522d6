package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/insights"
	"github.com/blackwell-systems/navwatch/internal/predict"
)

// Recorder persists what the tools change.
type Recorder interface {
	InsertEvent(e events.InteractionEvent) (string, error)
	DismissInsight(actor, insightID string) error
	DismissedInsights(actor string) (map[string]bool, error)
}

// TrackResult reports the outcome of track_event.
type TrackResult struct {
	Tracked   bool   `json:"tracked"`
	SessionID string `json:"session_id"`
}

// PredictionsResult holds ranked predictions.
type PredictionsResult struct {
	Actor       string               `json:"actor"`
	Context     events.Context       `json:"context"`
	Predictions []predict.Prediction `json:"predictions"`
}

// InsightsResult holds the actor's current insights.
type InsightsResult struct {
	Actor    string             `json:"actor"`
	Insights []insights.Insight `json:"insights"`
}

// RecommendationsResult holds blended recommendations.
type RecommendationsResult struct {
	Actor string         `json:"actor"`
	Items []catalog.Item `json:"items"`
}

// ShortcutsResult holds shortcut candidates keyed by joined item ids.
type ShortcutsResult struct {
	Actor     string              `json:"actor"`
	Shortcuts map[string][]string `json:"shortcuts"`
}

// SearchPatternsResult holds the most frequent search terms.
type SearchPatternsResult struct {
	Terms []string `json:"terms"`
}

// DismissResult confirms a dismissal.
type DismissResult struct {
	Dismissed string `json:"dismissed"`
}

var (
	actorContextSchema = json.RawMessage(`{"type":"object","properties":{"actor":{"type":"string","description":"Actor id (defaults to the server's actor)"},"context":{"type":"string","enum":["default","financial","operational","strategic"]}},"additionalProperties":false}`)
	actorSchema        = json.RawMessage(`{"type":"object","properties":{"actor":{"type":"string","description":"Actor id (defaults to the server's actor)"}},"additionalProperties":false}`)
	predictSchema      = json.RawMessage(`{"type":"object","properties":{"actor":{"type":"string"},"context":{"type":"string","enum":["default","financial","operational","strategic"]},"now":{"type":"string","format":"date-time","description":"Query time (default: now)"}},"additionalProperties":false}`)
	insightsSchema     = json.RawMessage(`{"type":"object","properties":{"actor":{"type":"string"},"context":{"type":"string","enum":["default","financial","operational","strategic"]},"include_dismissed":{"type":"boolean"}},"additionalProperties":false}`)
	searchSchema       = json.RawMessage(`{"type":"object","properties":{"actor":{"type":"string"},"queries":{"type":"array","items":{"type":"string"},"description":"Queries to analyze (default: the actor's search history)"}},"additionalProperties":false}`)
	dismissSchema      = json.RawMessage(`{"type":"object","properties":{"actor":{"type":"string"},"insight_id":{"type":"string"}},"required":["insight_id"],"additionalProperties":false}`)
	trackSchema        = json.RawMessage(`{"type":"object","properties":{"actor_id":{"type":"string"},"session_id":{"type":"string"},"item_id":{"type":"string"},"action":{"type":"string","enum":["click","hover","search","keyboard","voice","gesture"]},"context":{"type":"string","enum":["default","financial","operational","strategic"]},"timestamp":{"type":"string","format":"date-time"},"duration_ms":{"type":"integer"},"query":{"type":"string"},"previous_item":{"type":"string"}},"required":["item_id","action"],"additionalProperties":false}`)
)

// addTools registers every navigation tool on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "track_event",
		Description: "Record one navigation interaction event.",
		InputSchema: trackSchema,
		Handler:     s.handleTrackEvent,
	})
	s.registerTool(toolDef{
		Name:        "generate_predictions",
		Description: "Ranked predictions of where the actor will navigate next.",
		InputSchema: predictSchema,
		Handler:     s.handleGeneratePredictions,
	})
	s.registerTool(toolDef{
		Name:        "generate_insights",
		Description: "Usage insights: unused features, workflow shortcuts, keyboard tips and activity anomalies.",
		InputSchema: insightsSchema,
		Handler:     s.handleGenerateInsights,
	})
	s.registerTool(toolDef{
		Name:        "get_recommendations",
		Description: "Personalized catalog items blending frequency, context and predictions.",
		InputSchema: actorContextSchema,
		Handler:     s.handleGetRecommendations,
	})
	s.registerTool(toolDef{
		Name:        "predict_shortcuts",
		Description: "Repeated navigation sequences that could become shortcuts.",
		InputSchema: actorSchema,
		Handler:     s.handlePredictShortcuts,
	})
	s.registerTool(toolDef{
		Name:        "analyze_search_patterns",
		Description: "Most frequent meaningful search terms.",
		InputSchema: searchSchema,
		Handler:     s.handleAnalyzeSearchPatterns,
	})
	s.registerTool(toolDef{
		Name:        "dismiss_insight",
		Description: "Hide an insight from future generate_insights results.",
		InputSchema: dismissSchema,
		Handler:     s.handleDismissInsight,
	})
}

type actorArgs struct {
	Actor   string `json:"actor"`
	Context string `json:"context"`
}

// resolveActor falls back to the server's default actor.
func (s *Server) resolveActor(actor string) (string, error) {
	if actor != "" {
		return actor, nil
	}
	if s.actor != "" {
		return s.actor, nil
	}
	return "", errors.New("actor is required")
}

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// handleTrackEvent validates and records one event, persisting it when a
// store is configured.
func (s *Server) handleTrackEvent(args json.RawMessage) (any, error) {
	var rec events.Record
	if err := decodeArgs(args, &rec); err != nil {
		return nil, err
	}
	actor, err := s.resolveActor(rec.ActorID)
	if err != nil {
		return nil, err
	}
	rec.ActorID = actor
	if rec.Context == "" {
		rec.Context = events.ContextDefault
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.clock()
	}
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
	}

	ev := rec.Event()
	if err := events.Validate(ev); err != nil {
		return nil, err
	}
	s.engine.Track(ev)

	if s.store != nil {
		if _, err := s.store.InsertEvent(ev); err != nil {
			return nil, fmt.Errorf("storing event: %w", err)
		}
	}
	return TrackResult{Tracked: true, SessionID: ev.SessionID}, nil
}

// handleGeneratePredictions ranks the catalog for the actor.
func (s *Server) handleGeneratePredictions(args json.RawMessage) (any, error) {
	var params struct {
		actorArgs
		Now string `json:"now"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	actor, err := s.resolveActor(params.Actor)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if params.Now != "" {
		now, err = time.Parse(time.RFC3339, params.Now)
		if err != nil {
			return nil, fmt.Errorf("invalid now: %w", err)
		}
	}

	ctx := events.ParseContext(params.Context)
	preds := s.engine.GeneratePredictions(s.catalog, ctx, actor, now)
	if preds == nil {
		preds = []predict.Prediction{}
	}
	return PredictionsResult{Actor: actor, Context: ctx, Predictions: preds}, nil
}

// handleGenerateInsights returns the actor's insights without dismissed or
// expired ones unless include_dismissed is set.
func (s *Server) handleGenerateInsights(args json.RawMessage) (any, error) {
	var params struct {
		actorArgs
		IncludeDismissed bool `json:"include_dismissed"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	actor, err := s.resolveActor(params.Actor)
	if err != nil {
		return nil, err
	}

	list := s.engine.GenerateInsights(s.catalog, events.ParseContext(params.Context), actor)

	var dismissed map[string]bool
	if s.store != nil && !params.IncludeDismissed {
		dismissed, err = s.store.DismissedInsights(actor)
		if err != nil {
			return nil, fmt.Errorf("loading dismissals: %w", err)
		}
	}
	now := s.clock()
	out := make([]insights.Insight, 0, len(list))
	for _, ins := range list {
		if dismissed[ins.ID] || ins.Expired(now) {
			continue
		}
		out = append(out, ins)
	}
	return InsightsResult{Actor: actor, Insights: out}, nil
}

// handleGetRecommendations blends recommendations for the actor.
func (s *Server) handleGetRecommendations(args json.RawMessage) (any, error) {
	var params actorArgs
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	actor, err := s.resolveActor(params.Actor)
	if err != nil {
		return nil, err
	}
	items := s.engine.PersonalizedRecommendations(s.catalog, actor, events.ParseContext(params.Context))
	if items == nil {
		items = []catalog.Item{}
	}
	return RecommendationsResult{Actor: actor, Items: items}, nil
}

// handlePredictShortcuts mines shortcut candidates for the actor.
func (s *Server) handlePredictShortcuts(args json.RawMessage) (any, error) {
	var params actorArgs
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	actor, err := s.resolveActor(params.Actor)
	if err != nil {
		return nil, err
	}
	return ShortcutsResult{Actor: actor, Shortcuts: s.engine.PredictShortcuts(actor)}, nil
}

// handleAnalyzeSearchPatterns analyzes the given queries, or the actor's
// search history when none are given.
func (s *Server) handleAnalyzeSearchPatterns(args json.RawMessage) (any, error) {
	var params struct {
		Actor   string   `json:"actor"`
		Queries []string `json:"queries"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	queries := params.Queries
	if len(queries) == 0 {
		actor, err := s.resolveActor(params.Actor)
		if err != nil {
			return nil, err
		}
		queries = s.engine.SearchHistory(actor)
	}
	terms := s.engine.AnalyzeSearchPatterns(queries)
	if terms == nil {
		terms = []string{}
	}
	return SearchPatternsResult{Terms: terms}, nil
}

// handleDismissInsight records a dismissal in the store.
func (s *Server) handleDismissInsight(args json.RawMessage) (any, error) {
	var params struct {
		Actor     string `json:"actor"`
		InsightID string `json:"insight_id"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	if params.InsightID == "" {
		return nil, errors.New("insight_id is required")
	}
	if s.store == nil {
		return nil, errors.New("dismissals need a store")
	}
	actor, err := s.resolveActor(params.Actor)
	if err != nil {
		return nil, err
	}
	if err := s.store.DismissInsight(actor, params.InsightID); err != nil {
		return nil, err
	}
	return DismissResult{Dismissed: params.InsightID}, nil
}
