package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
)

type fakeSource struct {
	mu        sync.Mutex
	events    []events.InteractionEvent
	dismissed map[string]bool
	err       error
	calls     int
}

func (f *fakeSource) EventsSince(actor string, since time.Time) ([]events.InteractionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []events.InteractionEvent
	for _, e := range f.events {
		if e.ActorID == actor && !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeSource) DismissedInsights(string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.dismissed))
	for k, v := range f.dismissed {
		out[k] = v
	}
	return out, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSource) add(evs ...events.InteractionEvent) {
	f.mu.Lock()
	f.events = append(f.events, evs...)
	f.mu.Unlock()
}

// clicks returns n clicks six minutes apart, so no session sequences form.
func clicks(n int, end time.Time) []events.InteractionEvent {
	out := make([]events.InteractionEvent, n)
	for i := range out {
		out[i] = events.InteractionEvent{
			ActorID:   "u1",
			ItemID:    fmt.Sprintf("item-%d", i%4),
			Action:    events.ActionClick,
			Context:   events.ContextOperational,
			Timestamp: end.Add(-time.Duration(i) * 6 * time.Minute),
		}
	}
	return out
}

func newTestWatcher(src Source, alertFn func(Alert)) *Watcher {
	return New(src, Config{
		Actor:    "u1",
		Context:  events.ContextOperational,
		Catalog:  catalog.Catalog{{ID: "kitchen", Category: "operational"}},
		Interval: 10 * time.Millisecond,
		Clock:    func() time.Time { return t0 },
	}, alertFn)
}

func TestSnapshot_EmptySource(t *testing.T) {
	w := newTestWatcher(&fakeSource{}, nil)
	st, err := w.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, st.EventCount)
	require.Len(t, st.Insights, 1)
	assert.Equal(t, "unused-feature:kitchen", st.Insights[0].ID)
}

func TestSnapshot_SourceError(t *testing.T) {
	w := newTestWatcher(&fakeSource{err: errors.New("disk gone")}, nil)
	_, err := w.Snapshot()
	assert.ErrorContains(t, err, "disk gone")
}

func TestCheck_AlertsOnceForNewInsight(t *testing.T) {
	src := &fakeSource{}
	w := newTestWatcher(src, nil)

	assert.Empty(t, w.Check(), "first cycle has nothing to compare against")

	src.add(clicks(60, t0)...)
	alerts := w.Check()
	require.Len(t, alerts, 1)
	assert.Equal(t, "productivity:keyboard-shortcuts", alerts[0].InsightID)

	assert.Empty(t, w.Check(), "unchanged insights must not re-alert")
}

func TestCheck_SkipsDismissed(t *testing.T) {
	src := &fakeSource{dismissed: map[string]bool{"productivity:keyboard-shortcuts": true}}
	w := newTestWatcher(src, nil)
	w.Check()

	src.add(clicks(60, t0)...)
	assert.Empty(t, w.Check())
}

func TestCheck_SnapshotFailure(t *testing.T) {
	w := newTestWatcher(&fakeSource{err: errors.New("locked")}, nil)
	alerts := w.Check()
	require.Len(t, alerts, 1)
	assert.Equal(t, "warning", alerts[0].Level)
	assert.Contains(t, alerts[0].Message, "locked")
}

func TestRun_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{}
	var mu sync.Mutex
	var got []Alert
	w := newTestWatcher(src, func(a Alert) {
		mu.Lock()
		got = append(got, a)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return src.callCount() > 0 }, 2*time.Second, time.Millisecond)
	src.add(clicks(60, t0)...)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNew_Defaults(t *testing.T) {
	w := New(&fakeSource{}, Config{Interval: time.Minute}, nil)
	assert.NotNil(t, w.cfg.Clock)
	assert.NotNil(t, w.cfg.Logger)
	assert.NotNil(t, w.cfg.NewEngine)
	assert.Equal(t, events.DefaultRetention, w.cfg.Retention)
	assert.NotNil(t, w.lastAlertKeys)
}
