package predict

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/navwatch/internal/catalog"
	"github.com/blackwell-systems/navwatch/internal/events"
)

func ids(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestBlend_CombinesSignals(t *testing.T) {
	cat := catalog.Catalog{
		{ID: "orders", Category: "operational"},
		{ID: "kitchen"},
		{ID: "ledger", Contexts: []string{"financial"}},
		{ID: "settings"},
	}
	history := []events.InteractionEvent{
		event("kitchen", morning, events.ContextFinancial),
		event("kitchen", morning.Add(time.Hour), events.ContextFinancial),
	}
	preds := []Prediction{{ItemID: "ledger", Score: 1}}

	got := Blend(cat, history, events.ContextOperational, preds, DefaultBlendConfig())
	// kitchen 0.4 (frequency), orders 0.3 (context), ledger 0.3 (prediction)
	assert.Equal(t, []string{"kitchen", "ledger", "orders"}, ids(got))
}

func TestBlend_DropsUnknownIDs(t *testing.T) {
	cat := catalog.Catalog{{ID: "orders"}}
	history := []events.InteractionEvent{
		event("retired", morning, events.ContextDefault),
		event("orders", morning, events.ContextDefault),
	}
	got := Blend(cat, history, events.ContextDefault, nil, DefaultBlendConfig())
	assert.Equal(t, []string{"orders"}, ids(got))
}

func TestBlend_CapsResults(t *testing.T) {
	var cat catalog.Catalog
	for i := 0; i < 12; i++ {
		cat = append(cat, catalog.Item{ID: fmt.Sprintf("op-%02d", i), Category: "operational"})
	}
	got := Blend(cat, nil, events.ContextOperational, nil, DefaultBlendConfig())
	require.Len(t, got, 8)
	assert.Equal(t, "op-00", got[0].ID)
}

func TestBlend_Empty(t *testing.T) {
	assert.Empty(t, Blend(nil, nil, events.ContextDefault, nil, DefaultBlendConfig()))
}

func TestBlend_UnsetConfigUsesDefaults(t *testing.T) {
	var cat catalog.Catalog
	for i := 0; i < 12; i++ {
		cat = append(cat, catalog.Item{ID: fmt.Sprintf("item-%02d", i), Category: "operational"})
	}

	got := Blend(cat, nil, events.ContextOperational, nil, BlendConfig{TopFrequent: 3})
	assert.Len(t, got, DefaultMaxRecommendations)
	assert.Equal(t, DefaultBlendConfig(), BlendConfig{}.WithDefaults())
}
