package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// DeficitWarning is printed when expenses exceed income.
const DeficitWarning = "You're spending more than you earn!"

// WriteText writes the plain-text financial summary.
func WriteText(w io.Writer, s Summary, f Formatter) error {
	var b strings.Builder
	b.WriteString("==== FINANCIAL SUMMARY ====\n")
	fmt.Fprintf(&b, "Total Income:  %s\n", f.Format(s.TotalIncome))
	fmt.Fprintf(&b, "Total Expense: %s\n", f.Format(s.TotalExpense))
	fmt.Fprintf(&b, "Net Balance:   %s\n", f.Format(s.NetBalance))
	if s.IsDeficit {
		fmt.Fprintf(&b, "WARNING: %s\n", DeficitWarning)
	}

	writeBreakdown(&b, "Income by Category", s.IncomeByCategory, f)
	writeBreakdown(&b, "Expenses by Category", s.ExpenseByCategory, f)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBreakdown(b *strings.Builder, title string, totals CategoryTotals, f Formatter) {
	fmt.Fprintf(b, "\n--- %s ---\n", title)
	for _, ca := range totals.Sorted() {
		fmt.Fprintf(b, "%s: %s\n", ca.Category, f.Format(ca.Amount))
	}
}

// WriteTransactions writes every transaction as a fixed-width table.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	var b strings.Builder
	b.WriteString("==== ALL TRANSACTIONS ====\n")
	b.WriteString(row("Type", "Category", "Amount", "Date"))
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, txn := range txns {
		b.WriteString(row(txn.Kind.Label(), txn.Category, FormatAmount(txn.Amount), txn.Date))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func row(kind, category, amount, date string) string {
	line := fmt.Sprintf("%-10s%-15s%-10s%-12s", kind, category, amount, date)
	return strings.TrimRight(line, " ") + "\n"
}
