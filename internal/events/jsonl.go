package events

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// Record is the JSON Lines wire form of an InteractionEvent.
type Record struct {
	ActorID      string    `json:"actor_id"`
	SessionID    string    `json:"session_id,omitempty"`
	ItemID       string    `json:"item_id"`
	Action       Action    `json:"action"`
	Context      Context   `json:"context"`
	Timestamp    time.Time `json:"timestamp"`
	DurationMs   *int64    `json:"duration_ms,omitempty"`
	Query        string    `json:"query,omitempty"`
	PreviousItem string    `json:"previous_item,omitempty"`
}

// Event converts the record into an InteractionEvent. Missing or negative
// durations become zero.
func (r Record) Event() InteractionEvent {
	e := InteractionEvent{
		ActorID:      r.ActorID,
		SessionID:    r.SessionID,
		ItemID:       r.ItemID,
		Action:       r.Action,
		Context:      r.Context,
		Timestamp:    r.Timestamp,
		Query:        r.Query,
		PreviousItem: r.PreviousItem,
	}
	if r.DurationMs != nil && *r.DurationMs > 0 {
		e.Duration = time.Duration(*r.DurationMs) * time.Millisecond
	}
	return e
}

// NewRecord converts an event into its wire form.
func NewRecord(e InteractionEvent) Record {
	r := Record{
		ActorID:      e.ActorID,
		SessionID:    e.SessionID,
		ItemID:       e.ItemID,
		Action:       e.Action,
		Context:      e.Context,
		Timestamp:    e.Timestamp,
		Query:        e.Query,
		PreviousItem: e.PreviousItem,
	}
	if e.Duration > 0 {
		ms := e.Duration.Milliseconds()
		r.DurationMs = &ms
	}
	return r
}

// ReadJSONL parses one event per line from r. Blank and malformed lines are
// skipped; validation is left to the log.
func ReadJSONL(r io.Reader) ([]InteractionEvent, error) {
	var out []InteractionEvent
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		out = append(out, rec.Event())
	}
	return out, scanner.Err()
}

// ReadFiles parses several JSON Lines files concurrently and returns their
// events concatenated in argument order. A missing file is an error.
func ReadFiles(ctx context.Context, paths ...string) ([]InteractionEvent, error) {
	results := make([][]InteractionEvent, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			evs, err := ReadJSONL(f)
			if err != nil {
				return err
			}
			results[i] = evs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []InteractionEvent
	for _, evs := range results {
		all = append(all, evs...)
	}
	return all, nil
}

// WriteJSONL writes events as JSON Lines.
func WriteJSONL(w io.Writer, evs []InteractionEvent) error {
	enc := json.NewEncoder(w)
	for _, e := range evs {
		if err := enc.Encode(NewRecord(e)); err != nil {
			return err
		}
	}
	return nil
}
