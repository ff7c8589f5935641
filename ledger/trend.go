package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DatedEntry is a transaction row reduced to what trend bucketing needs.
type DatedEntry struct {
	Type   string
	Amount decimal.Decimal
	Date   time.Time
}

// MonthStat is one month's income/expense totals.
type MonthStat struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// MonthlyTrends buckets entries into the trailing `months` calendar months
// ending at ref's month, oldest first. Months without entries still appear
// with zero totals.
func MonthlyTrends(entries []DatedEntry, ref time.Time, months int) []MonthStat {
	trends := make([]MonthStat, 0, months)

	for i := months - 1; i >= 0; i-- {
		monthStart := time.Date(ref.Year(), ref.Month()-time.Month(i), 1, 0, 0, 0, 0, ref.Location())
		stat := MonthStat{Month: monthStart.Format("2006-01")}

		for _, e := range entries {
			if e.Date.Year() != monthStart.Year() || e.Date.Month() != monthStart.Month() {
				continue
			}
			switch e.Type {
			case TypeIncome:
				stat.Income = stat.Income.Add(e.Amount)
			case TypeExpense:
				stat.Expense = stat.Expense.Add(e.Amount)
			}
		}

		stat.Net = stat.Income.Sub(stat.Expense)
		trends = append(trends, stat)
	}

	return trends
}

// CategoryEntry is a categorized transaction row for spending breakdowns.
type CategoryEntry struct {
	CategoryID   uint
	CategoryName string
	CategoryType string
	Amount       decimal.Decimal
}

// CategoryTotal is the grouped total for one category.
type CategoryTotal struct {
	CategoryID       uint
	CategoryName     string
	CategoryType     string
	TotalAmount      decimal.Decimal
	TransactionCount int
}

// TopCategories groups entries by category and sorts by total amount
// descending. A limit of 0 returns every category.
func TopCategories(entries []CategoryEntry, limit int) []CategoryTotal {
	totals := make(map[uint]*CategoryTotal)
	order := make([]uint, 0)

	for _, e := range entries {
		t, ok := totals[e.CategoryID]
		if !ok {
			t = &CategoryTotal{
				CategoryID:   e.CategoryID,
				CategoryName: e.CategoryName,
				CategoryType: e.CategoryType,
			}
			totals[e.CategoryID] = t
			order = append(order, e.CategoryID)
		}
		t.TotalAmount = t.TotalAmount.Add(e.Amount)
		t.TransactionCount++
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		result = append(result, *totals[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAmount.GreaterThan(result[j].TotalAmount)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
