// Package app contains the Cobra command tree for navwatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagDB      string
	flagActor   string
	flagContext string
)

var rootCmd = &cobra.Command{
	Use:   "navwatch",
	Short: "Navigation analytics and next-step prediction",
	Long: `navwatch records how people move through an application, mines the
temporal, contextual and sequential patterns in that history, and turns them
into next-navigation predictions, usage insights, personalized
recommendations and shortcut candidates.

Run 'navwatch' with no arguments to see the available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "navwatch", appVersion)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use a subcommand:")
		fmt.Fprintln(out, "  track      Record interaction events")
		fmt.Fprintln(out, "  predict    Rank where you are likely to go next")
		fmt.Fprintln(out, "  insights   Surface usage insights")
		fmt.Fprintln(out, "  recommend  Personalized item recommendations")
		fmt.Fprintln(out, "  shortcuts  Repeated sequences worth a shortcut")
		fmt.Fprintln(out, "  search     Frequent search terms")
		fmt.Fprintln(out, "  dismiss    Hide an insight")
		fmt.Fprintln(out, "  watch      Monitor insights and notify on changes")
		fmt.Fprintln(out, "  mcp        Serve the engine over MCP stdio")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/navwatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/navwatch/navwatch.db)")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", defaultActor(), "Actor whose history is analyzed")
	rootCmd.PersistentFlags().StringVar(&flagContext, "context", "default", "Current context (default, financial, operational, strategic)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging on stderr")
}

// defaultActor is the login name, so a single-user install needs no flag.
func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return "default"
}
