package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/model"
)

const menu = `
==== MENU ====
1. Add Income
2. Add Expense
3. View All Transactions
4. View Financial Summary
5. Exit
`

func newShellCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			return runShell(s, cmd.InOrStdin())
		},
	}
}

// prompter reads one line of input per question.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

func runShell(s *session, in io.Reader) error {
	p := &prompter{sc: bufio.NewScanner(in), out: s.out}

	fmt.Fprintln(s.out, "==== Personal Finance Manager ====")
	fmt.Fprintf(s.out, "Loaded %d transactions.\n", s.ledger.Len())

	for {
		fmt.Fprint(s.out, menu)
		choice, err := p.ask("Enter your choice: ")
		if err != nil {
			return endShell(s, err)
		}

		switch choice {
		case "1":
			err = shellAdd(s, p, model.KindIncome)
		case "2":
			err = shellAdd(s, p, model.KindExpense)
		case "3":
			err = runList(s)
		case "4":
			err = runReport(s, &reportOptions{})
		case "5":
			fmt.Fprintln(s.out, "Thank you for using Personal Finance Manager!")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice! Please try again.")
		}
		if err != nil {
			return endShell(s, err)
		}
	}
}

func endShell(s *session, err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

// shellAdd asks for the fields of one transaction, re-asking until each is
// acceptable, then appends and saves. A failed save is reported and the
// session carries on with the transaction kept in memory.
func shellAdd(s *session, p *prompter, kind model.Kind) error {
	category, err := askField(s, p, "Enter Category: ", "category")
	if err != nil {
		return err
	}
	amount, err := askAmount(s, p)
	if err != nil {
		return err
	}
	date, err := askField(s, p, "Enter date (DD/MM/YYYY): ", "date")
	if err != nil {
		return err
	}

	txn, err := s.ledger.Append(kind, category, amount, date)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Transaction added successfully!")

	if err := s.save(commitMessage(txn)); err != nil {
		fmt.Fprintln(s.out, "Error: Could not save to file!")
		return nil
	}
	fmt.Fprintln(s.out, "Data saved successfully!")
	return nil
}

func askAmount(s *session, p *prompter) (decimal.Decimal, error) {
	for {
		raw, err := p.ask("Enter Amount: ")
		if err != nil {
			return decimal.Decimal{}, err
		}
		amount, err := parseAmount(raw)
		if err == nil {
			return amount, nil
		}
		fmt.Fprintln(s.out, "Please enter a positive amount!")
	}
}

func askField(s *session, p *prompter, question, name string) (string, error) {
	for {
		value, err := p.ask(question)
		if err != nil {
			return "", err
		}
		if err := journal.CheckField(name, value); err == nil {
			return value, nil
		}
		fmt.Fprintf(s.out, "The %s cannot contain commas.\n", name)
	}
}

