// Package events holds navigation interaction events and the time-bounded
// log that stores them per actor.
package events

import (
	"strings"
	"time"
)

// Action is the kind of interaction that produced an event.
type Action string

const (
	ActionClick    Action = "click"
	ActionHover    Action = "hover"
	ActionSearch   Action = "search"
	ActionKeyboard Action = "keyboard"
	ActionVoice    Action = "voice"
	ActionGesture  Action = "gesture"
)

// Actions lists every supported action kind.
var Actions = []Action{
	ActionClick, ActionHover, ActionSearch, ActionKeyboard, ActionVoice, ActionGesture,
}

// Valid reports whether a is one of the supported action kinds.
func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// Context is the coarse business area the actor was working in.
type Context string

const (
	ContextDefault     Context = "default"
	ContextFinancial   Context = "financial"
	ContextOperational Context = "operational"
	ContextStrategic   Context = "strategic"
)

// Contexts lists every supported navigation context.
var Contexts = []Context{
	ContextDefault, ContextFinancial, ContextOperational, ContextStrategic,
}

// Valid reports whether c is one of the supported contexts.
func (c Context) Valid() bool {
	for _, known := range Contexts {
		if c == known {
			return true
		}
	}
	return false
}

// ParseContext converts a user-supplied string into a Context. Unknown
// values map to ContextDefault.
func ParseContext(s string) Context {
	c := Context(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return ContextDefault
}

// InteractionEvent is a single navigation-relevant interaction. Events are
// never mutated after they are recorded.
type InteractionEvent struct {
	ActorID   string    `json:"actor_id" validate:"required"`
	SessionID string    `json:"session_id,omitempty"`
	ItemID    string    `json:"item_id" validate:"required"`
	Action    Action    `json:"action" validate:"required,action"`
	Context   Context   `json:"context" validate:"required,navcontext"`
	Timestamp time.Time `json:"timestamp" validate:"required"`

	// Duration is zero when the host did not measure it.
	Duration     time.Duration `json:"-"`
	Query        string        `json:"query,omitempty"`
	PreviousItem string        `json:"previous_item,omitempty"`
}

// normalize trims identifier fields and drops invalid optional values.
func (e InteractionEvent) normalize() InteractionEvent {
	e.ActorID = strings.TrimSpace(e.ActorID)
	e.SessionID = strings.TrimSpace(e.SessionID)
	e.ItemID = strings.TrimSpace(e.ItemID)
	e.PreviousItem = strings.TrimSpace(e.PreviousItem)
	if e.Duration < 0 {
		e.Duration = 0
	}
	return e
}
