package dashboardController

import (
	"finbook/database"
	"finbook/ledger"
	"finbook/middleware"
	"finbook/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// accountBalances computes every live account's current balance.
func accountBalances(db *gorm.DB, userID uint) ([]ledger.AccountBalance, error) {
	var accounts []models.Account
	if err := db.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, err
	}

	balances := make([]ledger.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		var transactions []models.Transaction
		if err := db.Select("transaction_type", "amount").
			Where("account_id = ?", account.ID).
			Find(&transactions).Error; err != nil {
			return nil, err
		}

		entries := make([]ledger.Entry, 0, len(transactions))
		for _, t := range transactions {
			entries = append(entries, ledger.Entry{Type: t.TransactionType, Amount: t.Amount})
		}

		balances = append(balances, ledger.AccountBalance{
			AccountType: account.AccountType,
			Balance:     ledger.ComputeBalance(account.InitialBalance, entries),
		})
	}
	return balances, nil
}

// portfolioSummary rolls the user's trades up for the net worth figure. A
// failure here degrades to zeros rather than failing the dashboard.
func portfolioSummary(db *gorm.DB, userID uint) ledger.PortfolioSummary {
	var trades []models.StockTrade
	if err := db.Preload("Security").
		Where("user_id = ?", userID).
		Order("trade_date asc, id asc").
		Find(&trades).Error; err != nil {
		log.Printf("Error loading trades for dashboard: %v", err)
		return ledger.PortfolioSummary{}
	}

	ledgerTrades := make([]ledger.Trade, 0, len(trades))
	for _, t := range trades {
		ledgerTrades = append(ledgerTrades, ledger.Trade{
			SecurityID: t.SecurityID,
			Ticker:     t.Security.TickerSymbol,
			TradeType:  t.TradeType,
			Quantity:   t.Quantity,
			Price:      t.PricePerShare,
		})
	}
	return ledger.SummarizePortfolio(ledgerTrades)
}

func GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db
	now := time.Now()

	balances, err := accountBalances(db, userID)
	if err != nil {
		log.Printf("Error computing balances for dashboard: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard")
	}

	cash, investments, liabilities := ledger.BucketTotals(balances)
	portfolio := portfolioSummary(db, userID)
	netWorth := ledger.NetWorth(cash, investments, portfolio.TotalInvested, liabilities)

	// Last 10 transactions, expenses shown negative. Rows whose account sits
	// in the trash stay off the dashboard.
	var recent []models.Transaction
	if err := db.Preload("Account").Preload("Category").
		Joins("JOIN accounts ON accounts.id = transactions.account_id AND accounts.deleted_at IS NULL").
		Where("transactions.user_id = ?", userID).
		Order("transactions.transaction_date desc, transactions.id desc").
		Limit(10).
		Find(&recent).Error; err != nil {
		log.Printf("Error loading recent transactions: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard")
	}
	recentItems := make([]fiber.Map, 0, len(recent))
	for _, t := range recent {
		amount := t.Amount
		if t.TransactionType == models.TransactionTypeExpense {
			amount = amount.Neg()
		}
		item := fiber.Map{
			"id":               t.ID,
			"transaction_type": t.TransactionType,
			"amount":           amount.StringFixed(2),
			"description":      t.Description,
			"transaction_date": t.TransactionDate,
			"account_name":     t.Account.AccountName,
		}
		if t.Category != nil {
			item["category_name"] = t.Category.CategoryName
		}
		recentItems = append(recentItems, item)
	}

	// Six months of income/expense trend.
	sixMonthsAgo := time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, now.Location())
	var trendRows []models.Transaction
	if err := db.Select("transaction_type", "amount", "transaction_date").
		Where("user_id = ? AND transaction_date >= ?", userID, sixMonthsAgo).
		Find(&trendRows).Error; err != nil {
		log.Printf("Error loading trend transactions: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard")
	}
	datedEntries := make([]ledger.DatedEntry, 0, len(trendRows))
	for _, t := range trendRows {
		datedEntries = append(datedEntries, ledger.DatedEntry{
			Type:   t.TransactionType,
			Amount: t.Amount,
			Date:   t.TransactionDate,
		})
	}
	trends := ledger.MonthlyTrends(datedEntries, now, 6)
	trendItems := make([]fiber.Map, 0, len(trends))
	for _, m := range trends {
		trendItems = append(trendItems, fiber.Map{
			"month":   m.Month,
			"income":  m.Income.StringFixed(2),
			"expense": m.Expense.StringFixed(2),
			"net":     m.Net.StringFixed(2),
		})
	}

	// Top five expense categories for the current month.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var categoryRows []struct {
		CategoryID   uint
		CategoryName string
		CategoryType string
		Amount       decimal.Decimal
	}
	if err := db.Model(&models.Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.transaction_type = ? AND transactions.transaction_date >= ?",
			userID, models.TransactionTypeExpense, monthStart).
		Where("categories.deleted_at IS NULL").
		Select("transactions.category_id, categories.category_name, categories.category_type, transactions.amount").
		Find(&categoryRows).Error; err != nil {
		log.Printf("Error loading category rows: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard")
	}
	categoryEntries := make([]ledger.CategoryEntry, 0, len(categoryRows))
	for _, r := range categoryRows {
		categoryEntries = append(categoryEntries, ledger.CategoryEntry{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			CategoryType: r.CategoryType,
			Amount:       r.Amount,
		})
	}
	topCategories := ledger.TopCategories(categoryEntries, 5)
	categoryItems := make([]fiber.Map, 0, len(topCategories))
	for _, t := range topCategories {
		categoryItems = append(categoryItems, fiber.Map{
			"category_id":       t.CategoryID,
			"category_name":     t.CategoryName,
			"total_amount":      t.TotalAmount.StringFixed(2),
			"transaction_count": t.TransactionCount,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"summary": fiber.Map{
			"net_worth":          netWorth.StringFixed(2),
			"cash":               cash.StringFixed(2),
			"investments":        investments.StringFixed(2),
			"portfolio_invested": portfolio.TotalInvested.StringFixed(2),
			"liabilities":        liabilities.StringFixed(2),
			"holdings_count":     portfolio.HoldingsCount,
		},
		"recent_transactions": recentItems,
		"monthly_trends":      trendItems,
		"top_categories":      categoryItems,
	})
}
