package cmd

import (
	"cellar/internal/di"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the persisted cellar state as indented JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, err := di.InitService(cliFlags())
	if err != nil {
		return err
	}
	if _, err := svc.Restore(); err != nil {
		return err
	}
	payload, err := svc.Export()
	if err != nil {
		return fmt.Errorf("export state: %w", err)
	}
	if exportOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return err
	}
	return os.WriteFile(exportOutput, append(payload, '\n'), 0o600)
}
