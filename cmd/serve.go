package cmd

import (
	"cellar/internal/di"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cellar HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := di.InitApp(cliFlags())
	if err != nil {
		return err
	}
	return app.Run()
}
