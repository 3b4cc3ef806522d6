package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/navwatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the engine over MCP stdio",
	Long: `Start a Model Context Protocol stdio server backed by the event store.
Retained events for every actor are loaded at startup; events tracked through
the server are stored as well. Tools:

  track_event              Record one interaction event
  generate_predictions     Ranked next-navigation predictions
  generate_insights        Usage insights (dismissed ones hidden)
  get_recommendations      Personalized recommendations
  predict_shortcuts        Repeated sequences worth a shortcut
  analyze_search_patterns  Frequent search terms
  dismiss_insight          Hide an insight

Calls that name no actor use --actor.

Add to an MCP client configuration:
  {"mcpServers":{"navwatch":{"command":"navwatch","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.Close()

	engine, err := e.engineFor("")
	if err != nil {
		return err
	}
	srv := mcp.NewServer(mcp.Options{
		Engine:       engine,
		Catalog:      e.catalog,
		Store:        e.db,
		DefaultActor: flagActor,
		Logger:       e.logger,
	})
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
