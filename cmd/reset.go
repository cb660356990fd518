package cmd

import (
	"cellar/internal/di"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetConfirmed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard consumption logs and notes, then re-seed from the catalog",
	Long: `reset clears local changes (consumption logs, free notes, ledger).
The catalog is untouched. Entries marked consumed in the catalog are logged again.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Confirm the irreversible reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return errors.New("refusing to reset local data without --yes")
	}
	svc, err := di.InitService(cliFlags())
	if err != nil {
		return err
	}
	if err := svc.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Local data reset. %d consumption logs seeded from the catalog.\n", svc.LogCount())
	return nil
}
