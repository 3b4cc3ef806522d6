package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/navwatch/internal/output"
)

var (
	predictLimit int
	predictAt    string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Rank where you are likely to go next",
	Long: `Score every catalog item against the actor's recent history and the
current context, and list the most likely next destinations with the reason
behind each.`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().IntVar(&predictLimit, "limit", 0, "Maximum number of predictions to show (default: all)")
	predictCmd.Flags().StringVar(&predictAt, "at", "", "Predict as of this RFC 3339 time (default: now)")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if predictAt != "" {
		parsed, err := time.Parse(time.RFC3339, predictAt)
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", predictAt, err)
		}
		now = parsed
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	engine, err := e.engineFor(flagActor)
	if err != nil {
		return err
	}
	preds := engine.GeneratePredictions(e.catalog, currentContext(), flagActor, now)
	if predictLimit > 0 && len(preds) > predictLimit {
		preds = preds[:predictLimit]
	}

	if flagJSON {
		return output.JSON(cmd.OutOrStdout(), preds)
	}
	output.Predictions(cmd.OutOrStdout(), preds, e.catalog)
	return nil
}
