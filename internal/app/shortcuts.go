package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/navwatch/internal/output"
)

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Repeated sequences worth a shortcut",
	Long: `Split the actor's history into sessions and list every navigation
sequence of two or more steps as a shortcut candidate.`,
	RunE: runShortcuts,
}

func init() {
	rootCmd.AddCommand(shortcutsCmd)
}

func runShortcuts(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	engine, err := e.engineFor(flagActor)
	if err != nil {
		return err
	}
	shortcuts := engine.PredictShortcuts(flagActor)

	if flagJSON {
		return output.JSON(cmd.OutOrStdout(), shortcuts)
	}
	output.Shortcuts(cmd.OutOrStdout(), shortcuts)
	return nil
}
