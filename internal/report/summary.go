// Package report aggregates a ledger snapshot into a Summary and renders it.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Source is anything that can hand out an ordered transaction snapshot.
// *ledger.Ledger satisfies it.
type Source interface {
	All() []model.Transaction
}

// CategoryTotals maps a category label to the summed amount for one kind.
type CategoryTotals map[string]decimal.Decimal

// CategoryAmount is one entry of a CategoryTotals in sorted order.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Sorted returns the entries ordered by category label (byte-wise, so
// case-sensitive).
func (c CategoryTotals) Sorted() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(c))
	for cat, amt := range c {
		out = append(out, CategoryAmount{Category: cat, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Total returns the sum of all entries.
func (c CategoryTotals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amt := range c {
		total = total.Add(amt)
	}
	return total
}

// Summary is the aggregate view of a ledger.
type Summary struct {
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	NetBalance        decimal.Decimal
	IsDeficit         bool
	IncomeByCategory  CategoryTotals
	ExpenseByCategory CategoryTotals
	Count             int
}

// ByKind returns the category breakdown for kind.
func (s Summary) ByKind(kind model.Kind) CategoryTotals {
	if kind == model.KindIncome {
		return s.IncomeByCategory
	}
	return s.ExpenseByCategory
}

// Summarize totals every transaction in src by kind and category. It never
// fails; an empty source yields zero totals and empty breakdowns.
func Summarize(src Source) Summary {
	s := Summary{
		TotalIncome:       decimal.Zero,
		TotalExpense:      decimal.Zero,
		IncomeByCategory:  CategoryTotals{},
		ExpenseByCategory: CategoryTotals{},
	}

	for _, txn := range src.All() {
		s.Count++
		switch txn.Kind {
		case model.KindIncome:
			s.TotalIncome = s.TotalIncome.Add(txn.Amount)
			s.IncomeByCategory[txn.Category] = s.IncomeByCategory[txn.Category].Add(txn.Amount)
		case model.KindExpense:
			s.TotalExpense = s.TotalExpense.Add(txn.Amount)
			s.ExpenseByCategory[txn.Category] = s.ExpenseByCategory[txn.Category].Add(txn.Amount)
		}
	}

	s.NetBalance = s.TotalIncome.Sub(s.TotalExpense)
	s.IsDeficit = s.NetBalance.IsNegative()
	return s
}
