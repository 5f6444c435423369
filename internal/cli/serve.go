package cli

import (
	"github.com/spf13/cobra"

	"github.com/pantrywatch/pantrywatch/internal/server"
)

func newServeCmd(application **app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long: `Run pantrywatch as an MCP (Model Context Protocol) server. The server
reads JSON-RPC requests from stdin and writes responses to stdout,
exposing label scanning and inventory tools to MCP clients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *application
			srv := server.New(a.store, a.detector, a.alerts, a.analytics)
			return srv.Run()
		},
	}
}
