package transactionController

import (
	"finbook/database"
	"finbook/ledger"
	"finbook/middleware"
	"finbook/models"
	"finbook/utils"
	transactionValidator "finbook/validators/transaction"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ownedAccount fetches an active account belonging to the user.
func ownedAccount(db *gorm.DB, userID, accountID uint) (models.Account, error) {
	var account models.Account
	err := db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error
	return account, err
}

// checkCategory verifies ownership and that the category direction matches
// the transaction type (Income category for INCOME, Expense for EXPENSE).
func checkCategory(db *gorm.DB, userID, categoryID uint, transactionType string) (int, string) {
	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		return fiber.StatusNotFound, "Category not found"
	}

	if transactionType == models.TransactionTypeIncome && category.CategoryType != models.CategoryTypeIncome {
		return fiber.StatusBadRequest, "Category type does not match transaction type"
	}
	if transactionType == models.TransactionTypeExpense && category.CategoryType != models.CategoryTypeExpense {
		return fiber.StatusBadRequest, "Category type does not match transaction type"
	}
	return 0, ""
}

func ListTransactions(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	query := db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if accountID := c.Query("account_id"); accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if transactionType := c.Query("type"); transactionType != "" {
		query = query.Where("transaction_type = ?", transactionType)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		if d, err := utils.ParseDate(startDate); err == nil {
			query = query.Where("transaction_date >= ?", d)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if d, err := utils.ParseDate(endDate); err == nil {
			query = query.Where("transaction_date <= ?", d)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting transactions: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var transactions []models.Transaction
	if err := query.
		Preload("Account").Preload("Category").
		Order("transaction_date desc, id desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&transactions).Error; err != nil {
		log.Printf("Error listing transactions: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func GetTransaction(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var transaction models.Transaction
	if err := database.Database.Db.
		Preload("Account").Preload("Category").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&transaction).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Transaction not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"transaction": transaction})
}

func CreateTransaction(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedTransaction").(*transactionValidator.CreateRequest)
	db := database.Database.Db

	if _, err := ownedAccount(db, userID, reqData.AccountID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found")
	}

	if reqData.CategoryID != nil {
		if status, msg := checkCategory(db, userID, *reqData.CategoryID, reqData.TransactionType); status != 0 {
			return middleware.ErrorResponse(c, status, msg)
		}
	}

	transactionDate, err := utils.ParseDateOr(reqData.TransactionDate, time.Now())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid transaction_date")
	}

	transaction := models.Transaction{
		UserID:          userID,
		AccountID:       reqData.AccountID,
		CategoryID:      reqData.CategoryID,
		TransactionType: reqData.TransactionType,
		Amount:          decimal.NewFromFloat(reqData.Amount).Abs().Round(2),
		Description:     reqData.Description,
		TransactionDate: transactionDate,
	}

	if err := db.Create(&transaction).Error; err != nil {
		log.Printf("Error creating transaction: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create transaction")
	}

	db.Preload("Account").Preload("Category").First(&transaction, transaction.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction": transaction})
}

func CreateTransfer(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedTransfer").(*transactionValidator.TransferRequest)
	db := database.Database.Db

	if _, err := ownedAccount(db, userID, reqData.FromAccountID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Source account not found")
	}
	if _, err := ownedAccount(db, userID, reqData.ToAccountID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Destination account not found")
	}

	transactionDate, err := utils.ParseDateOr(reqData.TransactionDate, time.Now())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid transaction_date")
	}

	amount := decimal.NewFromFloat(reqData.Amount).Abs().Round(2)
	groupID := uuid.NewString()

	outLeg := models.Transaction{
		UserID:          userID,
		AccountID:       reqData.FromAccountID,
		TransactionType: models.TransactionTypeTransfer,
		Amount:          amount,
		Description:     reqData.Description,
		TransactionDate: transactionDate,
		TransferGroupID: &groupID,
	}
	inLeg := models.Transaction{
		UserID:          userID,
		AccountID:       reqData.ToAccountID,
		TransactionType: models.TransactionTypeTransfer,
		Amount:          amount,
		Description:     reqData.Description,
		TransactionDate: transactionDate,
		TransferGroupID: &groupID,
	}

	// Both legs commit or neither does.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&outLeg).Error; err != nil {
			return err
		}
		return tx.Create(&inLeg).Error
	})
	if err != nil {
		log.Printf("Error creating transfer: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create transfer")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":           "Transfer created",
		"transfer_group_id": groupID,
		"transactions":      []models.Transaction{outLeg, inLeg},
	})
}

func UpdateTransaction(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedTransactionUpdate").(*transactionValidator.UpdateRequest)
	db := database.Database.Db

	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&transaction).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Transaction not found")
	}

	if transaction.TransactionType == models.TransactionTypeTransfer {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Transfer legs cannot be updated individually")
	}

	if reqData.AccountID != nil {
		if _, err := ownedAccount(db, userID, *reqData.AccountID); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found")
		}
		transaction.AccountID = *reqData.AccountID
	}
	if reqData.TransactionType != nil {
		transaction.TransactionType = *reqData.TransactionType
	}
	if reqData.CategoryID != nil {
		if status, msg := checkCategory(db, userID, *reqData.CategoryID, transaction.TransactionType); status != 0 {
			return middleware.ErrorResponse(c, status, msg)
		}
		transaction.CategoryID = reqData.CategoryID
	} else if reqData.TransactionType != nil && transaction.CategoryID != nil {
		// A type flip must still agree with the category kept on the row.
		if status, msg := checkCategory(db, userID, *transaction.CategoryID, transaction.TransactionType); status != 0 {
			return middleware.ErrorResponse(c, status, msg)
		}
	}
	if reqData.Amount != nil {
		transaction.Amount = decimal.NewFromFloat(*reqData.Amount).Abs().Round(2)
	}
	if reqData.Description != nil {
		transaction.Description = *reqData.Description
	}
	if reqData.TransactionDate != nil {
		d, err := utils.ParseDate(*reqData.TransactionDate)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid transaction_date")
		}
		transaction.TransactionDate = d
	}

	if err := db.Save(&transaction).Error; err != nil {
		log.Printf("Error updating transaction: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update transaction")
	}

	db.Preload("Account").Preload("Category").First(&transaction, transaction.ID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"transaction": transaction})
}

func DeleteTransaction(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&transaction).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Transaction not found")
	}

	// Deleting one transfer leg trashes the whole group.
	var err error
	if transaction.TransactionType == models.TransactionTypeTransfer && transaction.TransferGroupID != nil {
		err = db.Where("transfer_group_id = ?", *transaction.TransferGroupID).
			Delete(&models.Transaction{}).Error
	} else {
		err = db.Delete(&transaction).Error
	}
	if err != nil {
		log.Printf("Error deleting transaction: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete transaction")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Transaction moved to trash"})
}

func ListTrashedTransactions(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var transactions []models.Transaction
	if err := database.Database.Db.Unscoped().
		Preload("Account").Preload("Category").
		Where("user_id = ? AND transactions.deleted_at IS NOT NULL", userID).
		Order("transactions.deleted_at desc").
		Find(&transactions).Error; err != nil {
		log.Printf("Error listing trashed transactions: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trashed transactions")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"transactions": transactions})
}

func RestoreTransaction(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var transaction models.Transaction
	if err := db.Unscoped().
		Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", c.Params("id"), userID).
		First(&transaction).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Transaction not found in trash")
	}

	// Restoring one transfer leg restores the whole group.
	var err error
	if transaction.TransactionType == models.TransactionTypeTransfer && transaction.TransferGroupID != nil {
		err = db.Unscoped().Model(&models.Transaction{}).
			Where("transfer_group_id = ?", *transaction.TransferGroupID).
			Update("deleted_at", nil).Error
	} else {
		err = db.Unscoped().Model(&transaction).Update("deleted_at", nil).Error
	}
	if err != nil {
		log.Printf("Error restoring transaction: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to restore transaction")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Transaction restored"})
}

func TransactionSummary(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	query := db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if startDate := c.Query("start_date"); startDate != "" {
		if d, err := utils.ParseDate(startDate); err == nil {
			query = query.Where("transaction_date >= ?", d)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if d, err := utils.ParseDate(endDate); err == nil {
			query = query.Where("transaction_date <= ?", d)
		}
	}

	var transactions []models.Transaction
	if err := query.Select("transaction_type", "amount").Find(&transactions).Error; err != nil {
		log.Printf("Error loading transactions for summary: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch summary")
	}

	entries := make([]ledger.Entry, 0, len(transactions))
	for _, t := range transactions {
		entries = append(entries, ledger.Entry{Type: t.TransactionType, Amount: t.Amount})
	}
	summary := ledger.Summarize(entries)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"summary": fiber.Map{
			"total_income":          summary.TotalIncome.StringFixed(2),
			"total_expenses":        summary.TotalExpenses.StringFixed(2),
			"net_income":            summary.NetIncome.StringFixed(2),
			"income_transactions":   summary.IncomeTransactions,
			"expense_transactions":  summary.ExpenseTransactions,
			"transfer_transactions": summary.TransferTransactions,
		},
	})
}
