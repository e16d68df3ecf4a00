package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders the summary as a markdown document.
func Markdown(s Summary, f Formatter) string {
	var b strings.Builder
	b.WriteString("# Financial Summary\n\n")
	b.WriteString("| | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total Income | %s |\n", f.Format(s.TotalIncome))
	fmt.Fprintf(&b, "| Total Expense | %s |\n", f.Format(s.TotalExpense))
	fmt.Fprintf(&b, "| **Net Balance** | **%s** |\n", f.Format(s.NetBalance))
	if s.IsDeficit {
		fmt.Fprintf(&b, "\n> **Warning:** %s\n", DeficitWarning)
	}

	markdownBreakdown(&b, "Income by Category", s.IncomeByCategory, f)
	markdownBreakdown(&b, "Expenses by Category", s.ExpenseByCategory, f)
	return b.String()
}

func markdownBreakdown(b *strings.Builder, title string, totals CategoryTotals, f Formatter) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	if len(totals) == 0 {
		b.WriteString("_none_\n")
		return
	}
	b.WriteString("| Category | Amount |\n|---|---:|\n")
	for _, ca := range totals.Sorted() {
		fmt.Fprintf(b, "| %s | %s |\n", escapeCell(ca.Category), f.Format(ca.Amount))
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderTerminal renders markdown for a terminal using a glamour standard style
// ("auto", "dark", "light", "notty", ...).
func RenderTerminal(md, style string) (string, error) {
	if style == "" {
		style = "auto"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
