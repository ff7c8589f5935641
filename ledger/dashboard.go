package ledger

import (
	"github.com/shopspring/decimal"
)

// Dashboard account buckets. Membership is an exact, case-sensitive match on
// the account type string; anything else counts toward no bucket.
var (
	cashTypes       = map[string]bool{"Bank": true, "Cash": true, "Checking": true, "Savings": true}
	investmentTypes = map[string]bool{"Investment": true, "Brokerage": true}
	liabilityTypes  = map[string]bool{"Loan": true, "Credit": true, "Debt": true}
)

// AccountBalance pairs an account's type tag with its computed balance.
type AccountBalance struct {
	AccountType string
	Balance     decimal.Decimal
}

// BucketTotals splits balances into cash, investment and liability totals.
// Liability balances are summed as absolute values.
func BucketTotals(balances []AccountBalance) (cash, investments, liabilities decimal.Decimal) {
	for _, b := range balances {
		switch {
		case cashTypes[b.AccountType]:
			cash = cash.Add(b.Balance)
		case investmentTypes[b.AccountType]:
			investments = investments.Add(b.Balance)
		case liabilityTypes[b.AccountType]:
			liabilities = liabilities.Add(b.Balance.Abs())
		}
	}
	return cash, investments, liabilities
}

// NetWorth combines the bucket totals with the portfolio's invested capital.
func NetWorth(cash, investments, portfolioInvested, liabilities decimal.Decimal) decimal.Decimal {
	return cash.Add(investments).Add(portfolioInvested).Sub(liabilities).Round(2)
}
