package utils

import (
	"finbook/config"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// quoteResponse is the shape of the configured quote API's answer.
type quoteResponse struct {
	Symbol    string  `json:"symbol"`
	LastPrice float64 `json:"last_price"`
}

// GetLastPrice fetches the last traded price for a ticker from the configured
// quote API. Callers treat failures as "no price available".
func GetLastPrice(ticker string) (decimal.Decimal, error) {
	if config.AppConfig.QuoteApiURL == "" {
		return decimal.Zero, fmt.Errorf("quote API is not configured")
	}

	client := resty.New().SetTimeout(10 * time.Second)

	var quote quoteResponse
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.QuoteApiKey).
		SetQueryParam("symbol", ticker).
		SetResult(&quote).
		Get(config.AppConfig.QuoteApiURL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("quote API returned %s for %s", resp.Status(), ticker)
	}
	if quote.LastPrice <= 0 {
		return decimal.Zero, fmt.Errorf("no price for %s", ticker)
	}

	return decimal.NewFromFloat(quote.LastPrice).Round(2), nil
}
