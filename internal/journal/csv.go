package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

// Header is the optional first line of a journal file.
const Header = "Type,Category,Amount,Date"

const (
	numFields   = 4
	separator   = ","
	colKind     = 0
	colCategory = 1
	colAmount   = 2
	colDate     = 3
)

// ReadLedger decodes a journal into a new ledger. Malformed lines are skipped and
// reported in the returned slice; the error is only set when r itself fails.
// Lines may be of any length.
func ReadLedger(r io.Reader) (*ledger.Ledger, []*RecordError, error) {
	l := ledger.New()
	var skipped []*RecordError

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if raw != "" {
			lineNo++
			if rec := decodeLine(l, lineNo, raw); rec != nil {
				skipped = append(skipped, rec)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return l, skipped, fmt.Errorf("reading journal: %w", readErr)
		}
	}
	return l, skipped, nil
}

// decodeLine appends the record on one raw line to l. It returns nil for
// records, the header and blank lines, and a *RecordError otherwise.
func decodeLine(l *ledger.Ledger, lineNo int, raw string) *RecordError {
	line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
	if lineNo == 1 && line == Header {
		return nil
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}

	txn, err := UnmarshalTransaction(line)
	if err == nil {
		_, err = l.Append(txn.Kind, txn.Category, txn.Amount, txn.Date)
	}
	if err != nil {
		return &RecordError{Line: lineNo, Text: line, Reason: err.Error()}
	}
	return nil
}

// WriteTransactions writes the header followed by one line per transaction.
// Every record is encoded before anything is written, so an unencodable
// transaction leaves w untouched.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for i, txn := range txns {
		line, err := MarshalTransaction(txn)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}

// MarshalTransaction encodes a transaction as a journal line (without newline).
func MarshalTransaction(txn model.Transaction) (string, error) {
	if !txn.Kind.Valid() {
		return "", fmt.Errorf("%w: kind %q", ErrUnencodableField, string(txn.Kind))
	}
	if err := CheckField("category", txn.Category); err != nil {
		return "", err
	}
	if err := CheckField("date", txn.Date); err != nil {
		return "", err
	}

	row := make([]string, numFields)
	row[colKind] = string(txn.Kind)
	row[colCategory] = txn.Category
	row[colAmount] = txn.Amount.String()
	row[colDate] = txn.Date
	return strings.Join(row, separator), nil
}

// UnmarshalTransaction decodes a single journal line. The amount is not checked
// for sign here; the ledger does that on append.
func UnmarshalTransaction(line string) (model.Transaction, error) {
	record := strings.Split(line, separator)
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, numFields, len(record))
	}

	kind := model.Kind(record[colKind])
	if !kind.Valid() {
		return model.Transaction{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedRecord, record[colKind])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: parsing amount %q: %v", ErrMalformedRecord, record[colAmount], err)
	}

	return model.Transaction{
		Kind:     kind,
		Category: record[colCategory],
		Amount:   amount,
		Date:     record[colDate],
	}, nil
}

// CheckField reports whether value can be stored in a journal field.
func CheckField(name, value string) error {
	if strings.ContainsAny(value, ",\r\n") {
		return fmt.Errorf("%w: %s %q contains a comma or line break", ErrUnencodableField, name, value)
	}
	return nil
}
