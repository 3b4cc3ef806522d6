package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/navwatch/internal/output"
)

var searchQueries []string

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Frequent search terms",
	Long: `List the most frequent meaningful terms in the actor's search history,
or in the queries given with --query.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArrayVar(&searchQueries, "query", nil, "Query to analyze instead of the stored history (repeatable)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	engine, err := e.engineFor(flagActor)
	if err != nil {
		return err
	}
	queries := searchQueries
	if len(queries) == 0 {
		queries = engine.SearchHistory(flagActor)
	}
	terms := engine.AnalyzeSearchPatterns(queries)
	if terms == nil {
		terms = []string{}
	}

	if flagJSON {
		return output.JSON(cmd.OutOrStdout(), terms)
	}
	output.Terms(cmd.OutOrStdout(), terms)
	return nil
}
