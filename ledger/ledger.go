// Package ledger holds the aggregation core of the finance tracker: balance
// folding, portfolio holdings, budget evaluation and dashboard composition.
// Everything here is a pure function of already-loaded rows; callers are
// expected to have filtered out soft-deleted records before folding.
package ledger

import (
	"github.com/shopspring/decimal"
)

// Transaction type tags as stored.
const (
	TypeIncome   = "INCOME"
	TypeExpense  = "EXPENSE"
	TypeTransfer = "TRANSFER"
)

// Entry is one transaction row reduced to what balance math needs. Amount is
// the stored non-negative magnitude; the sign comes from Type.
type Entry struct {
	Type   string
	Amount decimal.Decimal
}

// ComputeBalance returns initial + income - expense over the given entries,
// rounded half-up to 2 decimal places. TRANSFER legs are balance neutral
// here: they never move the reported balance, only INCOME and EXPENSE rows
// do.
func ComputeBalance(initial decimal.Decimal, entries []Entry) decimal.Decimal {
	balance := initial
	for _, e := range entries {
		switch e.Type {
		case TypeIncome:
			balance = balance.Add(e.Amount)
		case TypeExpense:
			balance = balance.Sub(e.Amount)
		}
	}
	return balance.Round(2)
}

// Summary totals a set of entries by transaction type.
type Summary struct {
	TotalIncome          decimal.Decimal
	TotalExpenses        decimal.Decimal
	NetIncome            decimal.Decimal
	IncomeTransactions   int
	ExpenseTransactions  int
	TransferTransactions int
}

// Summarize folds entries into per-type totals and counts.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Type {
		case TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(e.Amount)
			s.IncomeTransactions++
		case TypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
			s.ExpenseTransactions++
		case TypeTransfer:
			s.TransferTransactions++
		}
	}
	s.NetIncome = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// AmountStats describes a list of transaction magnitudes.
type AmountStats struct {
	Count   int
	Total   decimal.Decimal
	Average decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
}

// Stats computes count/sum/avg/min/max over transaction amounts.
func Stats(amounts []decimal.Decimal) AmountStats {
	s := AmountStats{Count: len(amounts)}
	if len(amounts) == 0 {
		return s
	}
	s.Min = amounts[0]
	s.Max = amounts[0]
	for _, a := range amounts {
		s.Total = s.Total.Add(a)
		if a.LessThan(s.Min) {
			s.Min = a
		}
		if a.GreaterThan(s.Max) {
			s.Max = a
		}
	}
	s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	return s
}
