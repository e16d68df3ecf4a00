// Package ledger holds the in-memory, append-only transaction log of a session.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidKind is returned for a kind other than income or expense.
	ErrInvalidKind = errors.New("invalid transaction kind")
)

// Ledger is an ordered collection of transactions, oldest first.
// Entries are never modified or removed once appended.
type Ledger struct {
	txns []model.Transaction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append validates and appends a new transaction. On error the ledger is unchanged.
// An empty or all-blank category is stored as model.DefaultCategory; any other
// category is kept exactly as given.
func (l *Ledger) Append(kind model.Kind, category string, amount decimal.Decimal, date string) (model.Transaction, error) {
	if !kind.Valid() {
		return model.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidKind, string(kind))
	}
	if err := ValidateAmount(amount); err != nil {
		return model.Transaction{}, err
	}

	if strings.TrimSpace(category) == "" {
		category = model.DefaultCategory
	}

	txn := model.Transaction{
		Kind:     kind,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
	l.txns = append(l.txns, txn)
	return txn, nil
}

// ValidateAmount returns ErrInvalidAmount unless amount is strictly positive.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount.String())
	}
	return nil
}

// All returns a copy of the transactions in insertion order.
func (l *Ledger) All() []model.Transaction {
	out := make([]model.Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.txns)
}

// IsEmpty reports whether the ledger has no transactions.
func (l *Ledger) IsEmpty() bool {
	return len(l.txns) == 0
}
