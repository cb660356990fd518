package cmd

import (
	"cellar/internal/di"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the ledger matches the consumption logs",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	svc, err := di.InitService(cliFlags())
	if err != nil {
		return err
	}
	repaired, err := svc.Restore()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, d := range repaired {
		fmt.Fprintf(out, "repaired %s: ledger %d, logs %d\n", d.WineID, d.Ledger, d.Logged)
	}
	remaining := svc.Verify()
	if len(remaining) > 0 {
		for _, d := range remaining {
			fmt.Fprintf(out, "mismatch %s: ledger %d, logs %d\n", d.WineID, d.Ledger, d.Logged)
		}
		return fmt.Errorf("%d ledger entries do not match their logs", len(remaining))
	}
	fmt.Fprintf(out, "ledger consistent: %d logs, %d bottles remaining\n", svc.LogCount(), svc.TotalRemaining())
	return nil
}
