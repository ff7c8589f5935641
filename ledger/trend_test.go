package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyTrends(t *testing.T) {
	ref := day(2026, time.June, 15)
	entries := []DatedEntry{
		{Type: TypeIncome, Amount: dec("1000"), Date: day(2026, time.June, 1)},
		{Type: TypeExpense, Amount: dec("400"), Date: day(2026, time.June, 20)},
		{Type: TypeIncome, Amount: dec("500"), Date: day(2026, time.April, 10)},
		{Type: TypeTransfer, Amount: dec("999"), Date: day(2026, time.June, 5)},
		// outside the 6-month window
		{Type: TypeIncome, Amount: dec("777"), Date: day(2025, time.December, 1)},
	}

	trends := MonthlyTrends(entries, ref, 6)

	require.Len(t, trends, 6)
	assert.Equal(t, "2026-01", trends[0].Month)
	assert.Equal(t, "2026-06", trends[5].Month)

	// April bucket
	assert.True(t, dec("500").Equal(trends[3].Income))
	assert.True(t, dec("500").Equal(trends[3].Net))

	// June bucket: transfers never count toward income or expense
	assert.True(t, dec("1000").Equal(trends[5].Income))
	assert.True(t, dec("400").Equal(trends[5].Expense))
	assert.True(t, dec("600").Equal(trends[5].Net))

	// empty months are present with zero totals
	assert.True(t, trends[1].Income.IsZero())
	assert.True(t, trends[1].Expense.IsZero())
}

func TestMonthlyTrendsCrossesYearBoundary(t *testing.T) {
	trends := MonthlyTrends(nil, day(2026, time.February, 1), 6)

	require.Len(t, trends, 6)
	assert.Equal(t, "2025-09", trends[0].Month)
	assert.Equal(t, "2026-02", trends[5].Month)
}

func TestTopCategories(t *testing.T) {
	entries := []CategoryEntry{
		{CategoryID: 1, CategoryName: "Food & Dining", Amount: dec("120")},
		{CategoryID: 2, CategoryName: "Travel", Amount: dec("900")},
		{CategoryID: 1, CategoryName: "Food & Dining", Amount: dec("80")},
		{CategoryID: 3, CategoryName: "Shopping", Amount: dec("50")},
	}

	top := TopCategories(entries, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "Travel", top[0].CategoryName)
	assert.True(t, dec("900").Equal(top[0].TotalAmount))
	assert.Equal(t, "Food & Dining", top[1].CategoryName)
	assert.True(t, dec("200").Equal(top[1].TotalAmount))
	assert.Equal(t, 2, top[1].TransactionCount)
}

func TestTopCategoriesNoLimit(t *testing.T) {
	entries := []CategoryEntry{
		{CategoryID: 1, CategoryName: "A", Amount: dec("1")},
		{CategoryID: 2, CategoryName: "B", Amount: dec("2")},
	}

	top := TopCategories(entries, 0)
	assert.Len(t, top, 2)
}
