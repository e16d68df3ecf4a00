package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/report"
)

func newListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			return runList(s)
		},
	}
}

func runList(s *session) error {
	if s.ledger.IsEmpty() {
		fmt.Fprintln(s.out, "No transactions found!")
		return nil
	}
	return report.WriteTransactions(s.out, s.ledger.All())
}
