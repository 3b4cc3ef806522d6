package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/navwatch/internal/output"
)

var (
	dismissUndo bool
	dismissList bool
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss [insight-id]",
	Short: "Hide an insight",
	Long: `Hide an insight from future 'insights' output and watch alerts. The id
is shown under each insight. Use --undo to bring it back and --list to see
what is hidden.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDismiss,
}

func init() {
	dismissCmd.Flags().BoolVar(&dismissUndo, "undo", false, "Remove the dismissal instead")
	dismissCmd.Flags().BoolVar(&dismissList, "list", false, "List dismissed insights")
	rootCmd.AddCommand(dismissCmd)
}

func runDismiss(cmd *cobra.Command, args []string) error {
	if !dismissList && len(args) == 0 {
		return errors.New("insight id required")
	}

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	switch {
	case dismissList:
		list, err := e.db.ListDismissals(flagActor)
		if err != nil {
			return err
		}
		if flagJSON {
			return output.JSON(out, list)
		}
		tbl := output.NewTable("Insight", "Dismissed")
		for _, d := range list {
			tbl.AddRow(d.InsightID, d.DismissedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprint(out, tbl.Render())
		return nil

	case dismissUndo:
		if err := e.db.Undismiss(flagActor, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Restored %s\n", args[0])
		return nil

	default:
		if err := e.db.DismissInsight(flagActor, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Dismissed %s\n", args[0])
		return nil
	}
}
