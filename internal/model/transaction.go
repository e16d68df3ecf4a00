package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money coming in or going out.
// The string value is the token used in the journal file.
type Kind string

const (
	KindIncome  Kind = "inc"
	KindExpense Kind = "exp"
)

// DefaultCategory is stored when a transaction is created without a category.
const DefaultCategory = "General"

// Kinds lists every valid kind in display order.
var Kinds = []Kind{KindIncome, KindExpense}

// Label returns the human label for the kind ("Income" / "Expense").
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind accepts a journal token ("inc", "exp") or a label ("income", "expense",
// any case).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inc", "income":
		return KindIncome, nil
	case "exp", "expense":
		return KindExpense, nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// Transaction is one income or expense record.
type Transaction struct {
	Kind     Kind
	Category string
	Amount   decimal.Decimal // always > 0
	Date     string          // free-form, stored as entered
}

// Equal compares transactions field by field, using numeric equality for the amount.
func (t Transaction) Equal(o Transaction) bool {
	return t.Kind == o.Kind &&
		t.Category == o.Category &&
		t.Amount.Equal(o.Amount) &&
		t.Date == o.Date
}
