package ledger

import (
	"github.com/shopspring/decimal"
)

// Trade type tags as stored.
const (
	TradeBuy  = "BUY"
	TradeSell = "SELL"
)

// Trade is one stock trade row reduced to what the holdings fold needs.
type Trade struct {
	SecurityID   uint
	Ticker       string
	SecurityName string
	AssetType    string
	AccountName  string
	TradeType    string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
}

// Holding is the folded position for one (security, account) pair.
type Holding struct {
	SecurityID   uint
	Ticker       string
	SecurityName string
	AssetType    string
	AccountName  string
	Quantity     decimal.Decimal
	Invested     decimal.Decimal
	TradesCount  int
}

// AverageCostBasis returns invested/quantity rounded to 2 places, or zero for
// an empty position.
func (h Holding) AverageCostBasis() decimal.Decimal {
	if !h.Quantity.IsPositive() {
		return decimal.Zero
	}
	return h.Invested.Div(h.Quantity).Round(2)
}

type holdingKey struct {
	securityID  uint
	accountName string
}

// FoldHoldings folds trades, in the order given, into per-(security, account)
// positions. A BUY adds its notional to the cost basis; a SELL first reduces
// the quantity, then reduces the basis proportionally to the fraction of the
// pre-sell position being liquidated: ratio = q / (postQty + q). Positions
// whose final quantity is not positive are dropped, so no short positions are
// surfaced.
func FoldHoldings(trades []Trade) []Holding {
	holdings := make(map[holdingKey]*Holding)
	order := make([]holdingKey, 0, len(trades))

	for _, t := range trades {
		key := holdingKey{securityID: t.SecurityID, accountName: t.AccountName}
		h, ok := holdings[key]
		if !ok {
			h = &Holding{
				SecurityID:   t.SecurityID,
				Ticker:       t.Ticker,
				SecurityName: t.SecurityName,
				AssetType:    t.AssetType,
				AccountName:  t.AccountName,
			}
			holdings[key] = h
			order = append(order, key)
		}

		notional := t.Quantity.Mul(t.Price)

		switch t.TradeType {
		case TradeBuy:
			h.Quantity = h.Quantity.Add(t.Quantity)
			h.Invested = h.Invested.Add(notional)
		case TradeSell:
			h.Quantity = h.Quantity.Sub(t.Quantity)
			if h.Quantity.IsPositive() {
				sellRatio := t.Quantity.Div(h.Quantity.Add(t.Quantity))
				h.Invested = h.Invested.Sub(h.Invested.Mul(sellRatio))
			}
		}
		h.TradesCount++
	}

	result := make([]Holding, 0, len(order))
	for _, key := range order {
		if h := holdings[key]; h.Quantity.IsPositive() {
			result = append(result, *h)
		}
	}
	return result
}

// PortfolioSummary is the coarse per-user roll-up shown on the dashboard.
// TotalInvested is the running buy notional minus sell notional across all
// trades, not the per-position cost basis.
type PortfolioSummary struct {
	TotalInvested decimal.Decimal
	HoldingsCount int
}

// SummarizePortfolio folds trades keyed by ticker only and reports the net
// invested capital plus the number of open positions.
func SummarizePortfolio(trades []Trade) PortfolioSummary {
	type position struct {
		quantity decimal.Decimal
		invested decimal.Decimal
	}

	positions := make(map[string]*position)
	var totalInvested decimal.Decimal

	for _, t := range trades {
		p, ok := positions[t.Ticker]
		if !ok {
			p = &position{}
			positions[t.Ticker] = p
		}

		notional := t.Quantity.Mul(t.Price)

		switch t.TradeType {
		case TradeBuy:
			p.quantity = p.quantity.Add(t.Quantity)
			p.invested = p.invested.Add(notional)
			totalInvested = totalInvested.Add(notional)
		case TradeSell:
			p.quantity = p.quantity.Sub(t.Quantity)
			preSell := p.quantity.Add(t.Quantity)
			if !preSell.IsZero() {
				sellRatio := t.Quantity.Div(preSell)
				p.invested = p.invested.Sub(p.invested.Mul(sellRatio))
			}
			totalInvested = totalInvested.Sub(notional)
		}
	}

	summary := PortfolioSummary{TotalInvested: totalInvested}
	for _, p := range positions {
		if p.quantity.IsPositive() {
			summary.HoldingsCount++
		}
	}
	return summary
}
