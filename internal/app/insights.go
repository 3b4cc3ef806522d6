package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/navwatch/internal/insights"
	"github.com/blackwell-systems/navwatch/internal/output"
)

var insightsAll bool

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Surface usage insights",
	Long: `Run the insight detectors over the actor's history: unused features
relevant to the current context, repeated workflows worth a shortcut, low
keyboard use and unusual activity volume. Dismissed and expired insights
are hidden unless --all is given.`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsAll, "all", false, "Include dismissed insights")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	engine, err := e.engineFor(flagActor)
	if err != nil {
		return err
	}
	list := engine.GenerateInsights(e.catalog, currentContext(), flagActor)

	dismissed := map[string]bool{}
	if !insightsAll {
		if dismissed, err = e.db.DismissedInsights(flagActor); err != nil {
			return err
		}
	}
	list = visibleInsights(list, dismissed, time.Now())

	if flagJSON {
		return output.JSON(cmd.OutOrStdout(), list)
	}
	output.Insights(cmd.OutOrStdout(), list)
	return nil
}

// visibleInsights drops dismissed and expired insights.
func visibleInsights(list []insights.Insight, dismissed map[string]bool, now time.Time) []insights.Insight {
	out := make([]insights.Insight, 0, len(list))
	for _, ins := range list {
		if dismissed[ins.ID] || ins.Expired(now) {
			continue
		}
		out = append(out, ins)
	}
	return out
}
