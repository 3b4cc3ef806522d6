package patterns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/navwatch/internal/events"
)

func TestTopItems_OrdersByCountThenID(t *testing.T) {
	history := []events.InteractionEvent{
		click("u1", "b", t0),
		click("u1", "a", t0),
		click("u1", "c", t0),
		click("u1", "c", t0),
	}
	got := TopItems(history, 2)
	assert.Equal(t, []ItemCount{{ItemID: "c", Count: 2}, {ItemID: "a", Count: 1}}, got)
}

func TestTopItems_Empty(t *testing.T) {
	assert.Empty(t, TopItems(nil, 5))
}

func TestActionShare(t *testing.T) {
	kb := click("u1", "a", t0)
	kb.Action = events.ActionKeyboard
	history := []events.InteractionEvent{kb, click("u1", "a", t0.Add(time.Minute)), click("u1", "b", t0), click("u1", "c", t0)}
	assert.InDelta(t, 0.25, ActionShare(history, events.ActionKeyboard), 1e-9)
	assert.Zero(t, ActionShare(nil, events.ActionKeyboard))
}
