package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget period tags as stored.
const (
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
	PeriodCustom  = "custom"
)

// Budget status values returned by Evaluate.
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusOver    = "over"
)

// Window is the concrete inclusive date range a budget period resolves to.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window, boundaries included.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// MonthWindow returns the first and last calendar day of ref's month.
func MonthWindow(ref time.Time) Window {
	return Window{
		Start: time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()),
		End:   time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location()),
	}
}

// YearWindow returns Jan 1 and Dec 31 of ref's year.
func YearWindow(ref time.Time) Window {
	return Window{
		Start: time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location()),
		End:   time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, ref.Location()),
	}
}

// ResolveWindow maps a budget's period to the concrete date range for a given
// reference date. Custom periods use the budget's own start/end dates; a
// missing end date defaults to the reference date.
func ResolveWindow(period string, startDate time.Time, endDate *time.Time, ref time.Time) Window {
	switch period {
	case PeriodMonthly:
		return MonthWindow(ref)
	case PeriodYearly:
		return YearWindow(ref)
	default:
		end := ref
		if endDate != nil {
			end = *endDate
		}
		return Window{Start: startDate, End: end}
	}
}

// Evaluation is the spend-vs-budget figure set for one budget.
type Evaluation struct {
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed decimal.Decimal
	IsOverBudget   bool
	Status         string
}

var warningThreshold = decimal.NewFromFloat(0.8)

// Evaluate compares spending against a budget amount. PercentageUsed is zero
// for a zero budget, never a division by zero.
func Evaluate(amount, spent decimal.Decimal) Evaluation {
	e := Evaluation{
		Spent:     spent,
		Remaining: amount.Sub(spent),
		Status:    StatusGood,
	}
	if amount.IsPositive() {
		e.PercentageUsed = spent.Div(amount).Mul(decimal.NewFromInt(100)).Round(2)
	}
	if spent.GreaterThan(amount) {
		e.IsOverBudget = true
		e.Status = StatusOver
	} else if spent.GreaterThan(amount.Mul(warningThreshold)) {
		e.Status = StatusWarning
	}
	return e
}
