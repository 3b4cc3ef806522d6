package predict

import (
	"time"

	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/patterns"
)

// Shortcuts proposes one shortcut per distinct mined sequence, keyed by the
// sequence's item ids joined with an arrow.
func Shortcuts(history []events.InteractionEvent, gap time.Duration) map[string][]string {
	out := make(map[string][]string)
	for _, seq := range patterns.Mine(history, gap) {
		out[seq.Key()] = append([]string(nil), seq...)
	}
	return out
}
