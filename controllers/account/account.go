package accountController

import (
	"finbook/database"
	"finbook/ledger"
	"finbook/middleware"
	"finbook/models"
	accountValidator "finbook/validators/account"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// activeEntries loads the account's live transactions reduced to ledger
// entries for the balance fold.
func activeEntries(db *gorm.DB, accountID uint) ([]ledger.Entry, error) {
	var transactions []models.Transaction
	if err := db.Select("transaction_type", "amount").
		Where("account_id = ?", accountID).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.Entry, 0, len(transactions))
	for _, t := range transactions {
		entries = append(entries, ledger.Entry{Type: t.TransactionType, Amount: t.Amount})
	}
	return entries, nil
}

func accountResponse(account models.Account, balance decimal.Decimal) fiber.Map {
	return fiber.Map{
		"id":              account.ID,
		"account_name":    account.AccountName,
		"account_type":    account.AccountType,
		"initial_balance": account.InitialBalance.StringFixed(2),
		"current_balance": balance.StringFixed(2),
		"created_at":      account.CreatedAt,
		"updated_at":      account.UpdatedAt,
	}
}

func CreateAccount(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedAccount").(*accountValidator.AccountRequest)

	account := models.Account{
		UserID:         userID,
		AccountName:    reqData.AccountName,
		AccountType:    reqData.AccountType,
		InitialBalance: decimal.NewFromFloat(reqData.InitialBalance).Round(2),
	}

	if err := database.Database.Db.Create(&account).Error; err != nil {
		log.Printf("Error creating account: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	return c.Status(fiber.StatusCreated).JSON(accountResponse(account, account.InitialBalance))
}

func ListAccounts(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var accounts []models.Account
	if err := db.Where("user_id = ?", userID).Order("id asc").Find(&accounts).Error; err != nil {
		log.Printf("Error listing accounts: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch accounts")
	}

	response := make([]fiber.Map, 0, len(accounts))
	for _, account := range accounts {
		entries, err := activeEntries(db, account.ID)
		if err != nil {
			log.Printf("Error loading transactions for account %d: %v", account.ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch accounts")
		}
		response = append(response, accountResponse(account, ledger.ComputeBalance(account.InitialBalance, entries)))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"accounts": response})
}

func GetAccount(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var account models.Account
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&account).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found")
	}

	entries, err := activeEntries(db, account.ID)
	if err != nil {
		log.Printf("Error loading transactions for account %d: %v", account.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch account")
	}

	return c.Status(fiber.StatusOK).JSON(accountResponse(account, ledger.ComputeBalance(account.InitialBalance, entries)))
}

func UpdateAccount(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedAccount").(*accountValidator.AccountRequest)
	db := database.Database.Db

	var account models.Account
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&account).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found")
	}

	account.AccountName = reqData.AccountName
	account.AccountType = reqData.AccountType
	account.InitialBalance = decimal.NewFromFloat(reqData.InitialBalance).Round(2)

	if err := db.Save(&account).Error; err != nil {
		log.Printf("Error updating account: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update account")
	}

	entries, err := activeEntries(db, account.ID)
	if err != nil {
		log.Printf("Error loading transactions for account %d: %v", account.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update account")
	}

	return c.Status(fiber.StatusOK).JSON(accountResponse(account, ledger.ComputeBalance(account.InitialBalance, entries)))
}

func DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var account models.Account
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&account).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found")
	}

	if err := db.Delete(&account).Error; err != nil {
		log.Printf("Error deleting account: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete account")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Account moved to trash"})
}

func ListTrashedAccounts(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var accounts []models.Account
	if err := db.Unscoped().
		Where("user_id = ? AND deleted_at IS NOT NULL", userID).
		Order("deleted_at desc").
		Find(&accounts).Error; err != nil {
		log.Printf("Error listing trashed accounts: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trashed accounts")
	}

	response := make([]fiber.Map, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, fiber.Map{
			"id":              account.ID,
			"account_name":    account.AccountName,
			"account_type":    account.AccountType,
			"initial_balance": account.InitialBalance.StringFixed(2),
			"deleted_at":      account.DeletedAt.Time,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"accounts": response})
}

func RestoreAccount(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var account models.Account
	if err := db.Unscoped().
		Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", c.Params("id"), userID).
		First(&account).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Account not found in trash")
	}

	if err := db.Unscoped().Model(&account).Update("deleted_at", nil).Error; err != nil {
		log.Printf("Error restoring account: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to restore account")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Account restored"})
}
