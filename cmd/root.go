package cmd

import (
	"cellar/internal/structures"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "cellar",
	Short: "Flint Cellar: wine inventory and tasting journal",
	Long: `cellar serves a read-only wine catalog joined with a local consumption
journal. Consumption logs, free notes and the bottle ledger live in a single
JSON document next to the configured catalog.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cliFlags() *structures.CliFlags {
	return &structures.CliFlags{
		ConfigPath: configPath,
		DebugMode:  debugMode,
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Also log to stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(verifyCmd)
}
