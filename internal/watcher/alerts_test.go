package watcher

import (
	"testing"
	"time"

	"github.com/blackwell-systems/navwatch/internal/insights"
)

var t0 = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func state(at time.Time, list ...insights.Insight) *WatchState {
	return &WatchState{Timestamp: at, Insights: list, Dismissed: map[string]bool{}}
}

func suggestion(id string) insights.Insight {
	return insights.Insight{ID: id, Kind: insights.KindSuggestion, Title: "title " + id, Description: "desc " + id}
}

func warning(id string, expires *time.Time) insights.Insight {
	return insights.Insight{ID: id, Kind: insights.KindWarning, Title: "warn " + id, ExpiresAt: expires}
}

func TestCompare_NoChanges(t *testing.T) {
	prev := state(t0, suggestion("a"))
	curr := state(t0.Add(time.Minute), suggestion("a"))
	if alerts := Compare(prev, curr); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %d: %+v", len(alerts), alerts)
	}
}

func TestCompare_NewInsight(t *testing.T) {
	prev := state(t0, suggestion("a"))
	curr := state(t0.Add(time.Minute), suggestion("a"), suggestion("b"))

	alerts := Compare(prev, curr)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.InsightID != "b" || a.Level != "info" || a.Title != "title b" || a.Message != "desc b" {
		t.Errorf("unexpected alert %+v", a)
	}
	if !a.Time.Equal(curr.Timestamp) {
		t.Errorf("expected alert time %v, got %v", curr.Timestamp, a.Time)
	}
}

func TestCompare_NewWarningLevel(t *testing.T) {
	exp := t0.Add(time.Hour)
	alerts := Compare(state(t0), state(t0, warning("w", &exp)))
	if len(alerts) != 1 || alerts[0].Level != "warning" {
		t.Fatalf("expected one warning alert, got %+v", alerts)
	}
}

func TestCompare_SkipsDismissed(t *testing.T) {
	curr := state(t0, suggestion("a"))
	curr.Dismissed["a"] = true
	if alerts := Compare(state(t0), curr); len(alerts) != 0 {
		t.Errorf("expected dismissed insight to be skipped, got %+v", alerts)
	}
}

func TestCompare_SkipsExpired(t *testing.T) {
	exp := t0
	curr := state(t0, warning("w", &exp))
	if alerts := Compare(state(t0.Add(-time.Minute)), curr); len(alerts) != 0 {
		t.Errorf("expected expired insight to be skipped, got %+v", alerts)
	}
}

func TestCompare_WarningResolved(t *testing.T) {
	exp := t0.Add(time.Hour)
	prev := state(t0, warning("w", &exp), suggestion("a"))
	curr := state(t0.Add(time.Minute))

	alerts := Compare(prev, curr)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert for the cleared warning only, got %d", len(alerts))
	}
	if alerts[0].InsightID != "w" || alerts[0].Level != "info" {
		t.Errorf("unexpected alert %+v", alerts[0])
	}
}
