package patterns

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/navwatch/internal/events"
)

func approx(t *testing.T, want, got float64) {
	t.Helper()
	assert.InDelta(t, want, got, 1e-9)
}

func TestTemporal_CountsEventsWithinWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	history := []events.InteractionEvent{
		click("u1", "a", now.Add(-26*time.Hour)), // 08:00, two hours away
		click("u1", "a", now.Add(-24*time.Hour)), // 10:00
		click("u1", "b", now.Add(-21*time.Hour)), // 13:00, three hours away
	}
	scores := Temporal(history, now, DefaultParams())
	approx(t, 0.2, scores["a"])
	assert.NotContains(t, scores, "b")
}

func TestTemporal_WrapsAroundMidnight(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	history := []events.InteractionEvent{
		click("u1", "late", time.Date(2026, 3, 9, 1, 0, 0, 0, time.UTC)),
		click("u1", "early", time.Date(2026, 3, 9, 2, 0, 0, 0, time.UTC)),
	}
	scores := Temporal(history, now, DefaultParams())
	approx(t, 0.1, scores["late"])
	assert.NotContains(t, scores, "early")
}

func TestTemporal_UsesQueryLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, loc)
	// 09:00 UTC is 14:00 in UTC+5.
	history := []events.InteractionEvent{click("u1", "a", time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC))}
	approx(t, 0.1, Temporal(history, now, DefaultParams())["a"])
}

func TestContextual_MatchesQueryContext(t *testing.T) {
	fin := click("u1", "ledger", t0)
	fin.Context = events.ContextFinancial
	history := []events.InteractionEvent{
		click("u1", "orders", t0),
		click("u1", "orders", t0.Add(time.Hour)),
		fin,
	}
	scores := Contextual(history, events.ContextOperational, DefaultParams())
	approx(t, 0.2, scores["orders"])
	assert.NotContains(t, scores, "ledger")
}

func TestSequential_CreditsLastItemOfEachSequence(t *testing.T) {
	history := []events.InteractionEvent{
		click("u1", "a", t0),
		click("u1", "b", t0.Add(time.Minute)),
		click("u1", "a", t0.Add(time.Hour)),
		click("u1", "b", t0.Add(time.Hour+time.Minute)),
		click("u1", "lonely", t0.Add(3*time.Hour)),
	}
	scores := Sequential(history, DefaultParams())
	approx(t, 0.2, scores["b"])
	assert.NotContains(t, scores, "a")
	assert.NotContains(t, scores, "lonely")
}

func TestScorers_EmptyHistory(t *testing.T) {
	p := DefaultParams()
	assert.Empty(t, Temporal(nil, t0, p))
	assert.Empty(t, Contextual(nil, events.ContextDefault, p))
	assert.Empty(t, Sequential(nil, p))
}

func TestScorers_NeverNegative(t *testing.T) {
	history := []events.InteractionEvent{click("u1", "a", t0), click("u1", "b", t0.Add(time.Minute))}
	p := DefaultParams()
	for _, s := range []Scores{
		Temporal(history, t0, p),
		Contextual(history, events.ContextOperational, p),
		Sequential(history, p),
	} {
		for id, v := range s {
			if v < 0 || math.IsNaN(v) {
				t.Errorf("item %s has invalid score %f", id, v)
			}
		}
	}
}

func TestHourDistance(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{9, 9, 0}, {9, 11, 2}, {23, 1, 2}, {0, 12, 12}, {1, 22, 3},
	}
	for _, tc := range tests {
		if got := hourDistance(tc.a, tc.b); got != tc.want {
			t.Errorf("hourDistance(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParams_WithDefaultsFillsEachField(t *testing.T) {
	p := Params{SessionGap: 10 * time.Minute}.WithDefaults()
	assert.Equal(t, DefaultIncrement, p.Increment)
	assert.Equal(t, DefaultTemporalWindow, p.TemporalWindow)
	assert.Equal(t, 10*time.Minute, p.SessionGap)

	assert.Equal(t, DefaultParams(), Params{}.WithDefaults())
}

func TestParams_ValidateRequiresWholeHours(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
	assert.NoError(t, Params{TemporalWindow: 3 * time.Hour}.Validate())
	assert.Error(t, Params{TemporalWindow: 90 * time.Minute}.Validate())
}
