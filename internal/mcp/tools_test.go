package mcp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/navigator"
	"github.com/blackwell-systems/navwatch/internal/store"
)

var t0 = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, now time.Time) (*Server, *store.DB) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := func() time.Time { return now }
	s := NewServer(Options{
		Engine: navigator.New(navigator.Options{Clock: clock}),
		Catalog: catalog.Catalog{
			{ID: "orders", Label: "Orders", Category: "operational"},
			{ID: "kitchen", Label: "Kitchen", Category: "operational"},
			{ID: "ledger", Label: "Ledger", Category: "financial"},
		},
		Store:        db,
		DefaultActor: "u1",
		Clock:        clock,
	})
	return s, db
}

// callTool finds a registered tool by name and invokes it with args.
func callTool(t *testing.T, s *Server, name string, args string) (any, error) {
	t.Helper()
	for _, td := range s.tools {
		if td.Name == name {
			return td.Handler(json.RawMessage(args))
		}
	}
	t.Fatalf("tool %q not registered", name)
	return nil, nil
}

func track(t *testing.T, s *Server, item string, at time.Time) {
	t.Helper()
	args := `{"item_id":"` + item + `","action":"click","context":"operational","timestamp":"` + at.Format(time.RFC3339) + `"}`
	_, err := callTool(t, s, "track_event", args)
	require.NoError(t, err)
}

func TestTrackEvent_PersistsAndTracks(t *testing.T) {
	s, db := newTestServer(t, t0.Add(time.Hour))

	res, err := callTool(t, s, "track_event", `{"item_id":"orders","action":"click","context":"operational","timestamp":"2026-03-10T09:00:00Z","duration_ms":1200}`)
	require.NoError(t, err)
	tr := res.(TrackResult)
	assert.True(t, tr.Tracked)
	assert.NotEmpty(t, tr.SessionID, "session id is generated when absent")

	stored, err := db.EventsSince("u1", t0.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1200*time.Millisecond, stored[0].Duration)
	assert.Equal(t, 1, s.engine.Len())
}

func TestTrackEvent_DefaultsTimestampAndContext(t *testing.T) {
	now := t0.Add(time.Hour)
	s, db := newTestServer(t, now)

	_, err := callTool(t, s, "track_event", `{"item_id":"orders","action":"hover"}`)
	require.NoError(t, err)

	stored, err := db.EventsSince("u1", now)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, events.ContextDefault, stored[0].Context)
	assert.True(t, stored[0].Timestamp.Equal(now))
}

func TestTrackEvent_Invalid(t *testing.T) {
	s, db := newTestServer(t, t0)

	_, err := callTool(t, s, "track_event", `{"item_id":"orders","action":"teleport"}`)
	assert.ErrorIs(t, err, events.ErrInvalidEvent)

	n, err := db.CountEvents()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTrackEvent_MalformedArgs(t *testing.T) {
	s, _ := newTestServer(t, t0)
	_, err := callTool(t, s, "track_event", `[1,2]`)
	assert.Error(t, err)
}

func TestGeneratePredictions(t *testing.T) {
	s, _ := newTestServer(t, t0.Add(10*time.Minute))
	track(t, s, "orders", t0)
	track(t, s, "orders", t0.Add(2*time.Minute))
	track(t, s, "orders", t0.Add(5*time.Minute))
	track(t, s, "kitchen", t0.Add(6*time.Minute))

	res, err := callTool(t, s, "generate_predictions", `{"context":"operational","now":"2026-03-10T09:10:00Z"}`)
	require.NoError(t, err)
	pr := res.(PredictionsResult)
	assert.Equal(t, "u1", pr.Actor)
	assert.Equal(t, events.ContextOperational, pr.Context)
	require.NotEmpty(t, pr.Predictions)
	assert.Equal(t, "kitchen", pr.Predictions[0].ItemID)
}

func TestGeneratePredictions_BadNow(t *testing.T) {
	s, _ := newTestServer(t, t0)
	_, err := callTool(t, s, "generate_predictions", `{"now":"yesterday"}`)
	assert.ErrorContains(t, err, "invalid now")
}

func TestGeneratePredictions_EmptyIsNotNull(t *testing.T) {
	s, _ := newTestServer(t, t0)
	res, err := callTool(t, s, "generate_predictions", `{}`)
	require.NoError(t, err)
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"predictions":[]`)
}

func TestGenerateInsights_FiltersDismissed(t *testing.T) {
	s, _ := newTestServer(t, t0)

	res, err := callTool(t, s, "generate_insights", `{"context":"operational"}`)
	require.NoError(t, err)
	ir := res.(InsightsResult)
	require.Len(t, ir.Insights, 2)
	assert.Equal(t, "unused-feature:orders", ir.Insights[0].ID)

	_, err = callTool(t, s, "dismiss_insight", `{"insight_id":"unused-feature:orders"}`)
	require.NoError(t, err)

	res, err = callTool(t, s, "generate_insights", `{"context":"operational"}`)
	require.NoError(t, err)
	ir = res.(InsightsResult)
	require.Len(t, ir.Insights, 1)
	assert.Equal(t, "unused-feature:kitchen", ir.Insights[0].ID)

	res, err = callTool(t, s, "generate_insights", `{"context":"operational","include_dismissed":true}`)
	require.NoError(t, err)
	assert.Len(t, res.(InsightsResult).Insights, 2)
}

func TestGetRecommendations(t *testing.T) {
	s, _ := newTestServer(t, t0.Add(time.Hour))
	track(t, s, "ledger", t0)

	res, err := callTool(t, s, "get_recommendations", `{"context":"operational"}`)
	require.NoError(t, err)
	rr := res.(RecommendationsResult)
	var ids []string
	for _, it := range rr.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"ledger", "kitchen", "orders"}, ids)
}

func TestPredictShortcuts(t *testing.T) {
	s, _ := newTestServer(t, t0.Add(time.Hour))
	track(t, s, "orders", t0)
	track(t, s, "kitchen", t0.Add(time.Minute))

	res, err := callTool(t, s, "predict_shortcuts", `{"actor":"u1"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"orders → kitchen": {"orders", "kitchen"}}, res.(ShortcutsResult).Shortcuts)
}

func TestAnalyzeSearchPatterns_FromHistory(t *testing.T) {
	s, _ := newTestServer(t, t0.Add(time.Hour))
	for _, q := range []string{"sales report", "Sales Q1", "sales by region"} {
		_, err := callTool(t, s, "track_event", `{"item_id":"search","action":"search","query":"`+q+`","timestamp":"2026-03-10T09:00:00Z"}`)
		require.NoError(t, err)
	}

	res, err := callTool(t, s, "analyze_search_patterns", `{}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales", "report", "region"}, res.(SearchPatternsResult).Terms)
}

func TestDismissInsight_Validation(t *testing.T) {
	s, _ := newTestServer(t, t0)
	_, err := callTool(t, s, "dismiss_insight", `{}`)
	assert.ErrorContains(t, err, "insight_id is required")

	bare := NewServer(Options{DefaultActor: "u1"})
	_, err = callTool(t, bare, "dismiss_insight", `{"insight_id":"x"}`)
	assert.ErrorContains(t, err, "store")
}

func TestResolveActor(t *testing.T) {
	s := NewServer(Options{})
	_, err := callTool(t, s, "predict_shortcuts", `{}`)
	assert.ErrorContains(t, err, "actor is required")
}
