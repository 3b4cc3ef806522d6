// Package insights provides the rule-based insight detectors and the
// registry that runs them.
package insights

import (
	"time"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/patterns"
)

// Kind classifies an insight for presentation.
type Kind string

const (
	KindWarning    Kind = "warning"
	KindSuggestion Kind = "suggestion"
	KindInfo       Kind = "info"
	KindSuccess    Kind = "success"
)

// severity orders kinds for display, most urgent first.
func (k Kind) severity() int {
	switch k {
	case KindWarning:
		return 0
	case KindSuggestion:
		return 1
	case KindInfo:
		return 2
	case KindSuccess:
		return 3
	default:
		return 4
	}
}

// Action is an optional hint the host can render as a button. Exactly one
// of Target (an item id to navigate to) or Callback (a host-defined handler
// name) is normally set.
type Action struct {
	Label    string `json:"label"`
	Target   string `json:"target,omitempty"`
	Callback string `json:"callback,omitempty"`
}

// Insight is a usage observation produced by a detector. ID is stable for a
// given detector and trigger so the host can deduplicate and dismiss it.
type Insight struct {
	ID           string     `json:"id"`
	Kind         Kind       `json:"kind"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	RelatedItems []string   `json:"related_items,omitempty"`
	Action       *Action    `json:"action,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the insight has an expiry at or before now.
func (in Insight) Expired(now time.Time) bool {
	return in.ExpiresAt != nil && !in.ExpiresAt.After(now)
}

// Params holds the detector thresholds.
type Params struct {
	MaxInsights int

	// MaxUnused caps unused-feature insights per run.
	MaxUnused int

	// MinShortcutLength is the shortest sequence worth a shortcut.
	MinShortcutLength int

	ProductivityMinEvents int
	KeyboardRatio         float64

	AnomalyEvents int
	AnomalyWindow time.Duration
	AnomalyExpiry time.Duration
}

// DefaultParams returns the stock detector thresholds.
func DefaultParams() Params {
	return Params{
		MaxInsights:           5,
		MaxUnused:             2,
		MinShortcutLength:     3,
		ProductivityMinEvents: 50,
		KeyboardRatio:         0.10,
		AnomalyEvents:         200,
		AnomalyWindow:         24 * time.Hour,
		AnomalyExpiry:         time.Hour,
	}
}

// WithDefaults returns p with every unset or non-positive field replaced by
// its stock value.
func (p Params) WithDefaults() Params {
	def := DefaultParams()
	if p.MaxInsights <= 0 {
		p.MaxInsights = def.MaxInsights
	}
	if p.MaxUnused <= 0 {
		p.MaxUnused = def.MaxUnused
	}
	if p.MinShortcutLength <= 0 {
		p.MinShortcutLength = def.MinShortcutLength
	}
	if p.ProductivityMinEvents <= 0 {
		p.ProductivityMinEvents = def.ProductivityMinEvents
	}
	if p.KeyboardRatio <= 0 {
		p.KeyboardRatio = def.KeyboardRatio
	}
	if p.AnomalyEvents <= 0 {
		p.AnomalyEvents = def.AnomalyEvents
	}
	if p.AnomalyWindow <= 0 {
		p.AnomalyWindow = def.AnomalyWindow
	}
	if p.AnomalyExpiry <= 0 {
		p.AnomalyExpiry = def.AnomalyExpiry
	}
	return p
}

// Input provides everything a detector may read. History is one actor's
// retained events, oldest first; Sequences are mined from it.
type Input struct {
	Catalog   catalog.Catalog
	Context   events.Context
	History   []events.InteractionEvent
	Sequences []patterns.Sequence
	Now       time.Time
	Params    Params
}

// Detector examines the input and produces zero or more insights. Detectors
// never fail; finding nothing yields an empty slice.
type Detector func(in *Input) []Insight
