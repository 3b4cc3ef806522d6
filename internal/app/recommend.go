package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/navwatch/internal/output"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Personalized item recommendations",
	Long: `Blend the actor's most used items, items relevant to the current
context and the current predictions into one recommendation list.`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	engine, err := e.engineFor(flagActor)
	if err != nil {
		return err
	}
	items := engine.PersonalizedRecommendations(e.catalog, flagActor, currentContext())

	if flagJSON {
		return output.JSON(cmd.OutOrStdout(), items)
	}
	output.Recommendations(cmd.OutOrStdout(), items)
	return nil
}
