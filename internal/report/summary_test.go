package report

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scenarioLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	_, err := l.Append(model.KindIncome, "Salary", dec("1000.00"), "01/01/2024")
	require.NoError(t, err)
	_, err = l.Append(model.KindExpense, "Rent", dec("400.00"), "01/01/2024")
	require.NoError(t, err)
	_, err = l.Append(model.KindExpense, "Food", dec("50.50"), "02/01/2024")
	require.NoError(t, err)
	return l
}

func TestSummarizeScenario(t *testing.T) {
	s := Summarize(scenarioLedger(t))

	assert.Equal(t, "1000.00", FormatAmount(s.TotalIncome))
	assert.Equal(t, "450.50", FormatAmount(s.TotalExpense))
	assert.Equal(t, "549.50", FormatAmount(s.NetBalance))
	assert.False(t, s.IsDeficit)
	assert.Equal(t, 3, s.Count)

	require.Len(t, s.IncomeByCategory, 1)
	assert.True(t, s.IncomeByCategory["Salary"].Equal(dec("1000")))

	sorted := s.ExpenseByCategory.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "Food", sorted[0].Category)
	assert.True(t, sorted[0].Amount.Equal(dec("50.50")))
	assert.Equal(t, "Rent", sorted[1].Category)
	assert.True(t, sorted[1].Amount.Equal(dec("400.00")))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(ledger.New())

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.True(t, s.NetBalance.IsZero())
	assert.False(t, s.IsDeficit)
	assert.Zero(t, s.Count)
	require.NotNil(t, s.IncomeByCategory)
	require.NotNil(t, s.ExpenseByCategory)
	assert.Empty(t, s.IncomeByCategory)
	assert.Empty(t, s.ExpenseByCategory)
	assert.Empty(t, s.ExpenseByCategory.Sorted())
}

func TestSummarizeDeficit(t *testing.T) {
	l := ledger.New()
	_, err := l.Append(model.KindIncome, "Salary", dec("100"), "")
	require.NoError(t, err)
	_, err = l.Append(model.KindExpense, "Rent", dec("100.01"), "")
	require.NoError(t, err)

	s := Summarize(l)
	assert.True(t, s.IsDeficit)
	assert.Equal(t, "-0.01", FormatAmount(s.NetBalance))

	// Breaking even is not a deficit.
	l = ledger.New()
	_, err = l.Append(model.KindIncome, "Salary", dec("100"), "")
	require.NoError(t, err)
	_, err = l.Append(model.KindExpense, "Rent", dec("100"), "")
	require.NoError(t, err)
	assert.False(t, Summarize(l).IsDeficit)
}

func TestSummarizeCategoryMatchingIsExact(t *testing.T) {
	l := ledger.New()
	for _, cat := range []string{"Food", "food", "Food ", "Food"} {
		_, err := l.Append(model.KindExpense, cat, dec("1"), "")
		require.NoError(t, err)
	}
	// "Food " is trimmed on append, so it merges with "Food".
	s := Summarize(l)
	require.Len(t, s.ExpenseByCategory, 2)
	assert.True(t, s.ExpenseByCategory["Food"].Equal(dec("3")))
	assert.True(t, s.ExpenseByCategory["food"].Equal(dec("1")))

	sorted := s.ExpenseByCategory.Sorted()
	assert.Equal(t, "Food", sorted[0].Category, "upper case sorts before lower case")
	assert.Equal(t, "food", sorted[1].Category)
}

func TestSummarizeKindsAreIndependent(t *testing.T) {
	l := ledger.New()
	_, err := l.Append(model.KindIncome, "Refund", dec("20"), "")
	require.NoError(t, err)
	_, err = l.Append(model.KindExpense, "Refund", dec("5"), "")
	require.NoError(t, err)

	s := Summarize(l)
	assert.True(t, s.ByKind(model.KindIncome)["Refund"].Equal(dec("20")))
	assert.True(t, s.ByKind(model.KindExpense)["Refund"].Equal(dec("5")))
}

func TestSummarizeReconciles(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	categories := []string{"Salary", "Rent", "Food", "General", "Travel", "Gifts"}

	for round := 0; round < 50; round++ {
		l := ledger.New()
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			kind := model.Kinds[rng.Intn(len(model.Kinds))]
			cents := rng.Int63n(1_000_000) + 1
			_, err := l.Append(kind, categories[rng.Intn(len(categories))], decimal.New(cents, -2), "")
			require.NoError(t, err)
		}

		s := Summarize(l)
		assert.True(t, s.TotalIncome.Equal(s.IncomeByCategory.Total()), "round %d income", round)
		assert.True(t, s.TotalExpense.Equal(s.ExpenseByCategory.Total()), "round %d expense", round)
		assert.True(t, s.NetBalance.Equal(s.TotalIncome.Sub(s.TotalExpense)), "round %d net", round)
		assert.Equal(t, s.NetBalance.IsNegative(), s.IsDeficit, "round %d deficit", round)
		assert.Equal(t, n, s.Count)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	l := scenarioLedger(t)
	before := l.All()

	first := Summarize(l)
	second := Summarize(l)

	assert.True(t, first.TotalIncome.Equal(second.TotalIncome))
	assert.True(t, first.TotalExpense.Equal(second.TotalExpense))
	assert.True(t, first.NetBalance.Equal(second.NetBalance))
	assert.Equal(t, first.IsDeficit, second.IsDeficit)
	assert.Equal(t, first.IncomeByCategory.Sorted(), second.IncomeByCategory.Sorted())
	assert.Equal(t, first.ExpenseByCategory.Sorted(), second.ExpenseByCategory.Sorted())

	assert.Equal(t, before, l.All(), "summarize must not mutate the ledger")
}

type sliceSource []model.Transaction

func (s sliceSource) All() []model.Transaction { return s }

func TestSummarizeAcceptsAnySource(t *testing.T) {
	src := sliceSource{
		{Kind: model.KindExpense, Category: "Food", Amount: dec("2.25")},
		{Kind: model.KindExpense, Category: "Food", Amount: dec("0.75")},
	}
	s := Summarize(src)
	assert.Equal(t, "3.00", FormatAmount(s.TotalExpense))
	assert.True(t, s.IsDeficit)
}
