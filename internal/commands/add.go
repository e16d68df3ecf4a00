package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// dateLayout is the conventional DD/MM/YYYY form used for default dates.
const dateLayout = "02/01/2006"

func newAddCommand(opts *globalOptions) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
	}
	addCmd.AddCommand(
		newAddKindCommand(opts, model.KindIncome),
		newAddKindCommand(opts, model.KindExpense),
	)
	return addCmd
}

func newAddKindCommand(opts *globalOptions, kind model.Kind) *cobra.Command {
	var category, amount, date string

	cmd := &cobra.Command{
		Use:   lowerLabel(kind),
		Short: "Record " + lowerLabel(kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("date") {
				date = time.Now().Format(dateLayout)
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			return runAdd(s, kind, category, amount, date)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount, greater than zero (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&category, "category", "", "category (default \""+model.DefaultCategory+"\")")
	cmd.Flags().StringVar(&date, "date", "", "date, stored as given (default today, DD/MM/YYYY)")

	return cmd
}

func runAdd(s *session, kind model.Kind, category, rawAmount, date string) error {
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}
	if err := checkFields(category, date); err != nil {
		return err
	}

	txn, err := s.ledger.Append(kind, category, amount, date)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Transaction added successfully!")

	return s.save(commitMessage(txn))
}

// parseAmount parses user input into an amount accepted by the ledger.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ledger.ErrInvalidAmount, raw)
	}
	if err := ledger.ValidateAmount(amount); err != nil {
		return decimal.Decimal{}, err
	}
	return amount, nil
}

func checkFields(category, date string) error {
	if err := journal.CheckField("category", category); err != nil {
		return err
	}
	return journal.CheckField("date", date)
}

func commitMessage(txn model.Transaction) string {
	return fmt.Sprintf("add: %s %s %s", lowerLabel(txn.Kind), txn.Category, txn.Amount.StringFixed(2))
}

func lowerLabel(kind model.Kind) string {
	return strings.ToLower(kind.Label())
}
