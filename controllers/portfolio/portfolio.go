package portfolioController

import (
	"finbook/database"
	"finbook/ledger"
	"finbook/middleware"
	"finbook/models"
	"finbook/utils"
	portfolioValidator "finbook/validators/portfolio"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// findOrCreateSecurity resolves a ticker to its shared security row,
// registering it on first sight. Tickers are stored upper-cased.
func findOrCreateSecurity(tx *gorm.DB, ticker, name, assetType string) (models.Security, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	var security models.Security
	err := tx.Where("ticker_symbol = ?", ticker).First(&security).Error
	if err == nil {
		return security, nil
	}
	if err != gorm.ErrRecordNotFound {
		return security, err
	}

	if name == "" {
		name = ticker
	}
	if assetType == "" {
		assetType = "Stock"
	}
	security = models.Security{
		TickerSymbol: ticker,
		SecurityName: name,
		AssetType:    assetType,
	}
	return security, tx.Create(&security).Error
}

func CreateTrade(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedTrade").(*portfolioValidator.TradeRequest)
	db := database.Database.Db

	var account models.Account
	if err := db.Where("id = ? AND user_id = ?", reqData.AccountID, userID).First(&account).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found")
	}

	tradeDate, err := utils.ParseDateOr(reqData.TradeDate, time.Now())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid trade_date")
	}

	quantity := decimal.NewFromFloat(reqData.Quantity).Round(5)
	price := decimal.NewFromFloat(reqData.PricePerShare).Round(2)
	notional := quantity.Mul(price).Round(2)

	var trade models.StockTrade

	// The trade and its cash leg land together or not at all.
	err = db.Transaction(func(tx *gorm.DB) error {
		security, err := findOrCreateSecurity(tx, reqData.TickerSymbol, reqData.SecurityName, reqData.AssetType)
		if err != nil {
			return err
		}

		trade = models.StockTrade{
			UserID:        userID,
			AccountID:     reqData.AccountID,
			SecurityID:    security.ID,
			TradeType:     reqData.TradeType,
			Quantity:      quantity,
			PricePerShare: price,
			TradeDate:     tradeDate,
		}
		if err := tx.Create(&trade).Error; err != nil {
			return err
		}

		// BUY takes cash out of the account, SELL puts it back.
		transactionType := models.TransactionTypeExpense
		if reqData.TradeType == models.TradeTypeSell {
			transactionType = models.TransactionTypeIncome
		}

		cashLeg := models.Transaction{
			UserID:          userID,
			AccountID:       reqData.AccountID,
			TransactionType: transactionType,
			Amount:          notional,
			Description:     fmt.Sprintf("%s %s %s @ %s", reqData.TradeType, quantity.String(), security.TickerSymbol, price.StringFixed(2)),
			TransactionDate: tradeDate,
		}
		return tx.Create(&cashLeg).Error
	})
	if err != nil {
		log.Printf("Error creating trade: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create trade")
	}

	db.Preload("Security").Preload("Account").First(&trade, trade.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"trade": trade})
}

func ListTrades(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := db.Model(&models.StockTrade{}).Where("user_id = ?", userID)
	if accountID := c.Query("account_id"); accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	if ticker := c.Query("ticker"); ticker != "" {
		var security models.Security
		if err := db.Where("ticker_symbol = ?", strings.ToUpper(ticker)).First(&security).Error; err == nil {
			query = query.Where("security_id = ?", security.ID)
		} else {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"trades": []models.StockTrade{},
				"pagination": fiber.Map{
					"page": page, "limit": limit, "total": 0, "total_pages": 0,
				},
			})
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting trades: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trades")
	}

	var trades []models.StockTrade
	if err := query.
		Preload("Security").Preload("Account").
		Order("trade_date desc, id desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&trades).Error; err != nil {
		log.Printf("Error listing trades: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trades")
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"trades": trades,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func GetTrade(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var trade models.StockTrade
	if err := database.Database.Db.
		Preload("Security").Preload("Account").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&trade).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Trade not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"trade": trade})
}

// UpdateTrade rewrites the trade's fields, re-pointing the security when the
// ticker changes. The cash transaction synthesized at creation is left as it
// was recorded.
func UpdateTrade(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedTrade").(*portfolioValidator.TradeRequest)
	db := database.Database.Db

	var trade models.StockTrade
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&trade).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Trade not found")
	}

	var account models.Account
	if err := db.Where("id = ? AND user_id = ?", reqData.AccountID, userID).First(&account).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found")
	}

	tradeDate, err := utils.ParseDateOr(reqData.TradeDate, trade.TradeDate)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid trade_date")
	}

	security, err := findOrCreateSecurity(db, reqData.TickerSymbol, reqData.SecurityName, reqData.AssetType)
	if err != nil {
		log.Printf("Error resolving security: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update trade")
	}

	trade.AccountID = reqData.AccountID
	trade.SecurityID = security.ID
	trade.TradeType = reqData.TradeType
	trade.Quantity = decimal.NewFromFloat(reqData.Quantity).Round(5)
	trade.PricePerShare = decimal.NewFromFloat(reqData.PricePerShare).Round(2)
	trade.TradeDate = tradeDate

	if err := db.Save(&trade).Error; err != nil {
		log.Printf("Error updating trade: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update trade")
	}

	db.Preload("Security").Preload("Account").First(&trade, trade.ID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"trade": trade})
}

// DeleteTrade trashes the trade only. The cash transaction it synthesized
// stays on the account's history.
func DeleteTrade(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var trade models.StockTrade
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&trade).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Trade not found")
	}

	if err := db.Delete(&trade).Error; err != nil {
		log.Printf("Error deleting trade: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete trade")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Trade moved to trash"})
}

func ListTrashedTrades(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var trades []models.StockTrade
	if err := database.Database.Db.Unscoped().
		Preload("Security").Preload("Account").
		Where("user_id = ? AND stock_trades.deleted_at IS NOT NULL", userID).
		Order("stock_trades.deleted_at desc").
		Find(&trades).Error; err != nil {
		log.Printf("Error listing trashed trades: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trashed trades")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"trades": trades})
}

func RestoreTrade(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var trade models.StockTrade
	if err := db.Unscoped().
		Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", c.Params("id"), userID).
		First(&trade).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Trade not found in trash")
	}

	if err := db.Unscoped().Model(&trade).Update("deleted_at", nil).Error; err != nil {
		log.Printf("Error restoring trade: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to restore trade")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Trade restored"})
}

// loadLedgerTrades pulls the user's live trades, oldest first, in the shape
// the holdings fold wants.
func loadLedgerTrades(db *gorm.DB, userID uint) ([]ledger.Trade, error) {
	var trades []models.StockTrade
	if err := db.Preload("Security").Preload("Account").
		Where("user_id = ?", userID).
		Order("trade_date asc, id asc").
		Find(&trades).Error; err != nil {
		return nil, err
	}

	result := make([]ledger.Trade, 0, len(trades))
	for _, t := range trades {
		result = append(result, ledger.Trade{
			SecurityID:   t.SecurityID,
			Ticker:       t.Security.TickerSymbol,
			SecurityName: t.Security.SecurityName,
			AssetType:    t.Security.AssetType,
			AccountName:  t.Account.AccountName,
			TradeType:    t.TradeType,
			Quantity:     t.Quantity,
			Price:        t.PricePerShare,
		})
	}
	return result, nil
}

// GetHoldings folds the user's trades into open positions. Live quotes are
// best effort, a position without a price still comes back.
func GetHoldings(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	trades, err := loadLedgerTrades(database.Database.Db, userID)
	if err != nil {
		log.Printf("Error loading trades for holdings: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch holdings")
	}

	holdings := ledger.FoldHoldings(trades)

	var totalInvested decimal.Decimal
	response := make([]fiber.Map, 0, len(holdings))
	for _, h := range holdings {
		item := fiber.Map{
			"security_id":   h.SecurityID,
			"ticker_symbol": h.Ticker,
			"security_name": h.SecurityName,
			"asset_type":    h.AssetType,
			"account_name":  h.AccountName,
			"quantity":      h.Quantity.StringFixed(5),
			"invested":      h.Invested.StringFixed(2),
			"average_cost":  h.AverageCostBasis().StringFixed(2),
			"trades_count":  h.TradesCount,
		}

		if lastPrice, err := utils.GetLastPrice(h.Ticker); err == nil {
			marketValue := h.Quantity.Mul(lastPrice).Round(2)
			item["last_price"] = lastPrice.StringFixed(2)
			item["market_value"] = marketValue.StringFixed(2)
			item["unrealized_gain"] = marketValue.Sub(h.Invested).StringFixed(2)
		}

		totalInvested = totalInvested.Add(h.Invested)
		response = append(response, item)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"holdings":       response,
		"total_invested": totalInvested.StringFixed(2),
	})
}

func ListSecurities(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var securities []models.Security
	if err := db.Order("ticker_symbol asc").Find(&securities).Error; err != nil {
		log.Printf("Error listing securities: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch securities")
	}

	// Per-security trade counts for this user, zero rows omitted.
	var counts []struct {
		SecurityID uint
		Count      int
	}
	if err := db.Model(&models.StockTrade{}).
		Select("security_id, count(*) as count").
		Where("user_id = ?", userID).
		Group("security_id").
		Find(&counts).Error; err != nil {
		log.Printf("Error counting trades per security: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch securities")
	}
	countBySecurity := make(map[uint]int, len(counts))
	for _, row := range counts {
		countBySecurity[row.SecurityID] = row.Count
	}

	response := make([]fiber.Map, 0, len(securities))
	for _, s := range securities {
		response = append(response, fiber.Map{
			"id":            s.ID,
			"ticker_symbol": s.TickerSymbol,
			"security_name": s.SecurityName,
			"asset_type":    s.AssetType,
			"trades_count":  countBySecurity[s.ID],
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"securities": response})
}

func CreateSecurity(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSecurity").(*portfolioValidator.SecurityRequest)
	db := database.Database.Db

	ticker := strings.ToUpper(strings.TrimSpace(reqData.TickerSymbol))

	var existing models.Security
	if err := db.Where("ticker_symbol = ?", ticker).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Security already exists")
	}

	assetType := reqData.AssetType
	if assetType == "" {
		assetType = "Stock"
	}
	security := models.Security{
		TickerSymbol: ticker,
		SecurityName: reqData.SecurityName,
		AssetType:    assetType,
	}

	if err := db.Create(&security).Error; err != nil {
		log.Printf("Error creating security: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create security")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"security": security})
}
