package events

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONL_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"actor_id":"u1","item_id":"orders","action":"click","context":"operational","timestamp":"2026-03-10T09:00:00Z","duration_ms":1500}`,
		``,
		`not json`,
		`{"actor_id":"u1","item_id":"kitchen","action":"keyboard","context":"operational","timestamp":"2026-03-10T09:06:00Z","duration_ms":-3}`,
	}, "\n")

	got, err := ReadJSONL(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "orders", got[0].ItemID)
	assert.Equal(t, 1500*time.Millisecond, got[0].Duration)
	assert.Equal(t, ActionKeyboard, got[1].Action)
	assert.Zero(t, got[1].Duration)
}

func TestWriteJSONL_RoundTripsThroughReader(t *testing.T) {
	in := []InteractionEvent{{
		ActorID:      "u1",
		SessionID:    "s1",
		ItemID:       "search",
		Action:       ActionSearch,
		Context:      ContextFinancial,
		Timestamp:    base,
		Duration:     2 * time.Second,
		Query:        "sales report",
		PreviousItem: "dashboard",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, in))

	out, err := ReadJSONL(&buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, in[0].Timestamp.Equal(out[0].Timestamp))
	out[0].Timestamp = in[0].Timestamp
	assert.Equal(t, in, out)
}

func TestReadFiles_ConcatenatesInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jsonl")
	b := filepath.Join(dir, "b.jsonl")
	line := func(item string) string {
		return `{"actor_id":"u1","item_id":"` + item + `","action":"click","context":"default","timestamp":"2026-03-10T09:00:00Z"}` + "\n"
	}
	require.NoError(t, os.WriteFile(a, []byte(line("a1")+line("a2")), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(line("b1")), 0o644))

	got, err := ReadFiles(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a1", got[0].ItemID)
	assert.Equal(t, "a2", got[1].ItemID)
	assert.Equal(t, "b1", got[2].ItemID)
}

func TestReadFiles_MissingFile(t *testing.T) {
	_, err := ReadFiles(context.Background(), filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}
