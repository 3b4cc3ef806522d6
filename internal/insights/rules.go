package insights

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/patterns"
)

// UnusedFeatures suggests catalog items relevant to the current context that
// the actor has never opened.
func UnusedFeatures(in *Input) []Insight {
	var insights []Insight

	used := make(map[string]bool, len(in.History))
	for _, e := range in.History {
		used[e.ItemID] = true
	}

	for _, it := range in.Catalog {
		if len(insights) >= in.Params.MaxUnused {
			break
		}
		if used[it.ID] || !it.MatchesContext(in.Context) {
			continue
		}
		used[it.ID] = true
		insights = append(insights, Insight{
			ID:    "unused-feature:" + it.ID,
			Kind:  KindSuggestion,
			Title: fmt.Sprintf("Try %s", it.DisplayName()),
			Description: fmt.Sprintf(
				"%s is relevant to %s work but you have not opened it yet. "+
					"It may save you a few steps.",
				it.DisplayName(), in.Context,
			),
			RelatedItems: []string{it.ID},
			Action: &Action{
				Label:  fmt.Sprintf("Open %s", it.DisplayName()),
				Target: it.ID,
			},
		})
	}

	return insights
}

// WorkflowShortcut proposes a custom shortcut for the longest repeated
// workflow. Ties go to the sequence seen most often, then the earliest.
func WorkflowShortcut(in *Input) []Insight {
	var best patterns.Sequence
	bestCount := 0
	counts := make(map[string]int)
	for _, seq := range in.Sequences {
		counts[seq.Key()]++
	}

	for _, seq := range in.Sequences {
		if len(seq) < in.Params.MinShortcutLength {
			continue
		}
		c := counts[seq.Key()]
		if len(seq) > len(best) || (len(seq) == len(best) && c > bestCount) {
			best = seq
			bestCount = c
		}
	}
	if best == nil {
		return nil
	}

	key := best.Key()
	return []Insight{{
		ID:    "workflow-shortcut:" + key,
		Kind:  KindSuggestion,
		Title: "Create a shortcut for a repeated workflow",
		Description: fmt.Sprintf(
			"You often move through %d screens in a row (%s). "+
				"A custom shortcut could take you there in one step.",
			len(best), key,
		),
		RelatedItems: distinct(best),
		Action: &Action{
			Label:    "Create shortcut",
			Callback: "create_shortcut",
		},
	}}
}

// KeyboardProductivity suggests keyboard shortcuts to active actors who
// rarely use them.
func KeyboardProductivity(in *Input) []Insight {
	if len(in.History) <= in.Params.ProductivityMinEvents {
		return nil
	}
	share := patterns.ActionShare(in.History, events.ActionKeyboard)
	if share >= in.Params.KeyboardRatio {
		return nil
	}
	return []Insight{{
		ID:    "productivity:keyboard-shortcuts",
		Kind:  KindSuggestion,
		Title: "Speed up navigation with keyboard shortcuts",
		Description: fmt.Sprintf(
			"Only %.0f%% of your last %d interactions used the keyboard. "+
				"Keyboard shortcuts can make frequent navigation noticeably faster.",
			share*100, len(in.History),
		),
		Action: &Action{
			Label:    "Show shortcuts",
			Callback: "show_keyboard_shortcuts",
		},
	}}
}

// NavigationAnomaly warns when the actor's event volume in the trailing
// window is unusually high. The warning expires after AnomalyExpiry.
func NavigationAnomaly(in *Input) []Insight {
	since := in.Now.Add(-in.Params.AnomalyWindow)
	n := 0
	for _, e := range in.History {
		if e.Timestamp.After(since) && !e.Timestamp.After(in.Now) {
			n++
		}
	}
	if n <= in.Params.AnomalyEvents {
		return nil
	}

	expires := in.Now.Add(in.Params.AnomalyExpiry)
	return []Insight{{
		ID:    "anomaly:navigation-volume",
		Kind:  KindWarning,
		Title: "Unusual navigation activity",
		Description: fmt.Sprintf(
			"%d navigation events in the last %s is well above normal. "+
				"If this was not you, review recent account activity.",
			n, formatWindow(in.Params.AnomalyWindow),
		),
		ExpiresAt: &expires,
	}}
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// formatWindow renders whole-hour windows as "24h" rather than "24h0m0s".
func formatWindow(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		return fmt.Sprintf("%dh", d/time.Hour)
	}
	return d.String()
}
