package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/navwatch/internal/events"
	"github.com/blackwell-systems/navwatch/internal/output"
)

var (
	trackItem     string
	trackAction   string
	trackSession  string
	trackQuery    string
	trackPrevious string
	trackDuration time.Duration
	trackAt       string
)

var trackCmd = &cobra.Command{
	Use:   "track [events.jsonl ...]",
	Short: "Record interaction events",
	Long: `Record one interaction event from flags, or import JSON Lines files
with one event per line. Invalid events and malformed lines are skipped.
Events older than the retention window are purged from the store.

Examples:
  navwatch track --item orders --action click --context operational
  navwatch track --item search --action search --query "sales report"
  navwatch track export-1.jsonl export-2.jsonl`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().StringVar(&trackItem, "item", "", "Item id that was interacted with")
	trackCmd.Flags().StringVar(&trackAction, "action", string(events.ActionClick), "Action (click, hover, search, keyboard, voice, gesture)")
	trackCmd.Flags().StringVar(&trackSession, "session", "", "Session id (default: generated)")
	trackCmd.Flags().StringVar(&trackQuery, "query", "", "Search query for search actions")
	trackCmd.Flags().StringVar(&trackPrevious, "previous", "", "Previous item id")
	trackCmd.Flags().DurationVar(&trackDuration, "duration", 0, "How long the interaction took")
	trackCmd.Flags().StringVar(&trackAt, "at", "", "Event time in RFC 3339 (default: now)")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	var evs []events.InteractionEvent
	switch {
	case len(args) > 0:
		read, err := events.ReadFiles(cmd.Context(), args...)
		if err != nil {
			return fmt.Errorf("reading event files: %w", err)
		}
		evs = read
	case trackItem != "":
		ev, err := eventFromFlags()
		if err != nil {
			return err
		}
		evs = []events.InteractionEvent{ev}
	default:
		return errors.New("nothing to track: pass --item or one or more JSONL files")
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	valid := make([]events.InteractionEvent, 0, len(evs))
	for _, ev := range evs {
		if err := events.Validate(ev); err != nil {
			e.logger.Debug("skipping invalid event", zap.Error(err))
			continue
		}
		valid = append(valid, ev)
	}
	if len(args) == 0 && len(valid) == 0 {
		return events.Validate(evs[0])
	}

	if _, err := e.db.InsertEvents(valid); err != nil {
		return fmt.Errorf("storing events: %w", err)
	}
	purged, err := e.db.PurgeBefore(time.Now().Add(-e.cfg.Windows.Retention))
	if err != nil {
		return fmt.Errorf("purging old events: %w", err)
	}

	result := struct {
		Tracked int   `json:"tracked"`
		Skipped int   `json:"skipped"`
		Purged  int64 `json:"purged"`
	}{len(valid), len(evs) - len(valid), purged}

	if flagJSON {
		return output.JSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tracked %d event(s)", result.Tracked)
	if result.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", skipped %d invalid", result.Skipped)
	}
	if result.Purged > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", purged %d expired", result.Purged)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

// eventFromFlags builds one event from the track flags.
func eventFromFlags() (events.InteractionEvent, error) {
	at := time.Now()
	if trackAt != "" {
		parsed, err := time.Parse(time.RFC3339, trackAt)
		if err != nil {
			return events.InteractionEvent{}, fmt.Errorf("invalid --at %q: %w", trackAt, err)
		}
		at = parsed
	}
	session := trackSession
	if session == "" {
		session = uuid.NewString()
	}
	return events.InteractionEvent{
		ActorID:      flagActor,
		SessionID:    session,
		ItemID:       trackItem,
		Action:       events.Action(trackAction),
		Context:      currentContext(),
		Timestamp:    at,
		Duration:     trackDuration,
		Query:        trackQuery,
		PreviousItem: trackPrevious,
	}, nil
}
