package events

import (
	"sort"
	"time"
)

// DefaultRetention is how long events stay in the log.
const DefaultRetention = 30 * 24 * time.Hour

// Log is an append-only, time-bounded store of interaction events keyed by
// actor. Each actor's events are kept sorted by timestamp.
//
// Log is not safe for concurrent use; callers synchronize access.
type Log struct {
	retention time.Duration
	byActor   map[string][]InteractionEvent
}

// NewLog creates an empty log that keeps events for the given retention
// window. A non-positive retention uses DefaultRetention.
func NewLog(retention time.Duration) *Log {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Log{
		retention: retention,
		byActor:   make(map[string][]InteractionEvent),
	}
}

// Retention returns the configured retention window.
func (l *Log) Retention() time.Duration {
	return l.retention
}

// Append validates and records e, then discards every event that fell out
// of the retention window as of now. Invalid events are not recorded.
func (l *Log) Append(e InteractionEvent, now time.Time) error {
	if err := Validate(e); err != nil {
		return err
	}
	e = e.normalize()

	list := l.byActor[e.ActorID]
	// Insert after any event with the same timestamp so arrival order is kept.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Timestamp.After(e.Timestamp)
	})
	list = append(list, InteractionEvent{})
	copy(list[i+1:], list[i:])
	list[i] = e
	l.byActor[e.ActorID] = list

	l.Purge(now)
	return nil
}

// Purge removes all events older than the retention window relative to now
// and returns how many were dropped.
func (l *Log) Purge(now time.Time) int {
	cutoff := now.Add(-l.retention)
	dropped := 0
	for actor, list := range l.byActor {
		i := firstAtOrAfter(list, cutoff)
		if i == 0 {
			continue
		}
		dropped += i
		if i == len(list) {
			delete(l.byActor, actor)
			continue
		}
		kept := make([]InteractionEvent, len(list)-i)
		copy(kept, list[i:])
		l.byActor[actor] = kept
	}
	return dropped
}

// Snapshot returns a copy of the actor's events that are inside the
// retention window ending at now, oldest first. Events after now are left
// out, so a query for an earlier time sees the log as it stood then.
func (l *Log) Snapshot(actor string, now time.Time) []InteractionEvent {
	list := l.byActor[actor]
	lo := firstAtOrAfter(list, now.Add(-l.retention))
	hi := sort.Search(len(list), func(i int) bool {
		return list[i].Timestamp.After(now)
	})
	if hi < lo {
		hi = lo
	}
	out := make([]InteractionEvent, hi-lo)
	copy(out, list[lo:hi])
	return out
}

// Actors returns the ids of every actor with at least one stored event,
// sorted.
func (l *Log) Actors() []string {
	actors := make([]string, 0, len(l.byActor))
	for a := range l.byActor {
		actors = append(actors, a)
	}
	sort.Strings(actors)
	return actors
}

// Len returns the total number of stored events across all actors.
func (l *Log) Len() int {
	n := 0
	for _, list := range l.byActor {
		n += len(list)
	}
	return n
}

// firstAtOrAfter returns the index of the first event whose timestamp is not
// before cutoff.
func firstAtOrAfter(list []InteractionEvent, cutoff time.Time) int {
	return sort.Search(len(list), func(i int) bool {
		return !list[i].Timestamp.Before(cutoff)
	})
}
