package insights

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/patterns"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func evAt(item string, action events.Action, at time.Time) events.InteractionEvent {
	return events.InteractionEvent{
		ActorID:   "u1",
		ItemID:    item,
		Action:    action,
		Context:   events.ContextOperational,
		Timestamp: at,
	}
}

// spread returns n click events one hour apart ending at end.
func spread(n int, action events.Action, end time.Time) []events.InteractionEvent {
	out := make([]events.InteractionEvent, n)
	for i := range out {
		out[i] = evAt(fmt.Sprintf("item-%d", i%7), action, end.Add(-time.Duration(n-1-i)*time.Hour))
	}
	return out
}

func input(history []events.InteractionEvent) *Input {
	return &Input{
		Context:   events.ContextOperational,
		History:   history,
		Sequences: patterns.Mine(history, patterns.DefaultSessionGap),
		Now:       now,
		Params:    DefaultParams(),
	}
}

// --- UnusedFeatures ---

func TestUnusedFeatures_SuggestsUntouchedContextItems(t *testing.T) {
	in := input([]events.InteractionEvent{evAt("orders", events.ActionClick, now)})
	in.Catalog = catalog.Catalog{
		{ID: "orders", Category: "operational"},
		{ID: "kitchen", Label: "Kitchen Display", Category: "operational"},
		{ID: "ledger", Category: "financial"},
		{ID: "receiving", Contexts: []string{"operational"}},
	}

	got := UnusedFeatures(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(got))
	}
	if got[0].ID != "unused-feature:kitchen" || got[1].ID != "unused-feature:receiving" {
		t.Errorf("unexpected ids: %q, %q", got[0].ID, got[1].ID)
	}
	if got[0].Kind != KindSuggestion {
		t.Errorf("expected kind %q, got %q", KindSuggestion, got[0].Kind)
	}
	if !strings.Contains(got[0].Title, "Kitchen Display") {
		t.Errorf("expected title to contain label, got %q", got[0].Title)
	}
	if got[0].Action == nil || got[0].Action.Target != "kitchen" {
		t.Errorf("expected action targeting kitchen, got %+v", got[0].Action)
	}
}

func TestUnusedFeatures_CapsAtMaxUnused(t *testing.T) {
	in := input(nil)
	for i := 0; i < 5; i++ {
		in.Catalog = append(in.Catalog, catalog.Item{ID: fmt.Sprintf("op-%d", i), Category: "operational"})
	}
	if got := UnusedFeatures(in); len(got) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(got))
	}
}

func TestUnusedFeatures_AllUsed(t *testing.T) {
	in := input([]events.InteractionEvent{evAt("orders", events.ActionClick, now)})
	in.Catalog = catalog.Catalog{{ID: "orders", Category: "operational"}}
	if got := UnusedFeatures(in); len(got) != 0 {
		t.Fatalf("expected 0 insights, got %d", len(got))
	}
}

func TestUnusedFeatures_EmptyCatalog(t *testing.T) {
	if got := UnusedFeatures(input(nil)); len(got) != 0 {
		t.Fatalf("expected 0 insights, got %d", len(got))
	}
}

// --- WorkflowShortcut ---

func TestWorkflowShortcut_PicksLongestSequence(t *testing.T) {
	history := []events.InteractionEvent{
		evAt("a", events.ActionClick, now.Add(-3*time.Hour)),
		evAt("b", events.ActionClick, now.Add(-3*time.Hour+time.Minute)),
		evAt("c", events.ActionClick, now.Add(-3*time.Hour+2*time.Minute)),
		evAt("x", events.ActionClick, now.Add(-time.Hour)),
		evAt("y", events.ActionClick, now.Add(-time.Hour+time.Minute)),
		evAt("x", events.ActionClick, now.Add(-time.Hour+2*time.Minute)),
		evAt("z", events.ActionClick, now.Add(-time.Hour+3*time.Minute)),
	}
	got := WorkflowShortcut(input(history))
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	if got[0].ID != "workflow-shortcut:x → y → x → z" {
		t.Errorf("unexpected id %q", got[0].ID)
	}
	if strings.Join(got[0].RelatedItems, ",") != "x,y,z" {
		t.Errorf("expected distinct related items, got %v", got[0].RelatedItems)
	}
	if got[0].Action == nil || got[0].Action.Callback != "create_shortcut" {
		t.Errorf("expected create_shortcut callback, got %+v", got[0].Action)
	}
}

func TestWorkflowShortcut_TiePrefersMostRepeated(t *testing.T) {
	in := input(nil)
	in.Sequences = []patterns.Sequence{
		{"a", "b", "c"},
		{"d", "e", "f"},
		{"d", "e", "f"},
	}
	got := WorkflowShortcut(in)
	if len(got) != 1 || got[0].ID != "workflow-shortcut:d → e → f" {
		t.Fatalf("expected d → e → f, got %+v", got)
	}
}

func TestWorkflowShortcut_IgnoresShortSequences(t *testing.T) {
	in := input(nil)
	in.Sequences = []patterns.Sequence{{"a", "b"}, {"c", "d"}}
	if got := WorkflowShortcut(in); len(got) != 0 {
		t.Fatalf("expected 0 insights, got %d", len(got))
	}
}

// --- KeyboardProductivity ---

func TestKeyboardProductivity_LowKeyboardUse(t *testing.T) {
	got := KeyboardProductivity(input(spread(51, events.ActionClick, now)))
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	if got[0].ID != "productivity:keyboard-shortcuts" {
		t.Errorf("unexpected id %q", got[0].ID)
	}
}

func TestKeyboardProductivity_ExactlyFiftyEvents(t *testing.T) {
	if got := KeyboardProductivity(input(spread(50, events.ActionClick, now))); len(got) != 0 {
		t.Fatalf("expected 0 insights at the threshold, got %d", len(got))
	}
}

func TestKeyboardProductivity_EnoughKeyboardUse(t *testing.T) {
	history := spread(60, events.ActionClick, now)
	for i := 0; i < 6; i++ {
		history[i].Action = events.ActionKeyboard
	}
	if got := KeyboardProductivity(input(history)); len(got) != 0 {
		t.Fatalf("expected 0 insights at 10%% keyboard use, got %d", len(got))
	}
}

// --- NavigationAnomaly ---

func burst(n int) []events.InteractionEvent {
	out := make([]events.InteractionEvent, n)
	for i := range out {
		out[i] = evAt("orders", events.ActionClick, now.Add(-time.Duration(i)*time.Minute))
	}
	return out
}

func TestNavigationAnomaly_FiresAbove200(t *testing.T) {
	got := NavigationAnomaly(input(burst(201)))
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(got))
	}
	a := got[0]
	if a.Kind != KindWarning {
		t.Errorf("expected warning, got %q", a.Kind)
	}
	if a.ExpiresAt == nil || !a.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expected expiry exactly one hour after now, got %v", a.ExpiresAt)
	}
	if !strings.Contains(a.Description, "24h") {
		t.Errorf("expected description to mention window, got %q", a.Description)
	}
}

func TestNavigationAnomaly_Exactly200(t *testing.T) {
	if got := NavigationAnomaly(input(burst(200))); len(got) != 0 {
		t.Fatalf("expected 0 insights, got %d", len(got))
	}
}

func TestNavigationAnomaly_IgnoresOlderEvents(t *testing.T) {
	history := burst(150)
	for i := 0; i < 100; i++ {
		history = append(history, evAt("orders", events.ActionClick, now.Add(-25*time.Hour-time.Duration(i)*time.Minute)))
	}
	if got := NavigationAnomaly(input(history)); len(got) != 0 {
		t.Fatalf("expected 0 insights, got %d", len(got))
	}
}

func TestFormatWindow(t *testing.T) {
	if got := formatWindow(24 * time.Hour); got != "24h" {
		t.Errorf("formatWindow(24h) = %q", got)
	}
	if got := formatWindow(90 * time.Minute); got != "1h30m0s" {
		t.Errorf("formatWindow(90m) = %q", got)
	}
}
