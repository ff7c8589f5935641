package categoryController

import (
	"finbook/database"
	"finbook/ledger"
	"finbook/middleware"
	"finbook/models"
	"finbook/utils"
	categoryValidator "finbook/validators/category"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func CreateCategory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)
	db := database.Database.Db

	// One name per direction per user.
	var existing models.Category
	if err := db.Where("user_id = ? AND category_name = ? AND category_type = ?",
		userID, reqData.CategoryName, reqData.CategoryType).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Category already exists")
	}

	category := models.Category{
		UserID:       &userID,
		CategoryName: reqData.CategoryName,
		CategoryType: reqData.CategoryType,
	}

	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

func ListCategories(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	query := db.Where("user_id = ?", userID)
	if categoryType := c.Query("type"); categoryType != "" {
		query = query.Where("category_type = ?", categoryType)
	}

	var categories []models.Category
	if err := query.Order("category_type asc, category_name asc").Find(&categories).Error; err != nil {
		log.Printf("Error listing categories: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"categories": categories})
}

func GetCategory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var category models.Category
	if err := database.Database.Db.
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"category": category})
}

func UpdateCategory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)
	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}

	var existing models.Category
	if err := db.Where("user_id = ? AND category_name = ? AND category_type = ? AND id != ?",
		userID, reqData.CategoryName, reqData.CategoryType, category.ID).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Category already exists")
	}

	category.CategoryName = reqData.CategoryName
	category.CategoryType = reqData.CategoryType

	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error updating category: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update category")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"category": category})
}

func DeleteCategory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}

	if err := db.Delete(&category).Error; err != nil {
		log.Printf("Error deleting category: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete category")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Category moved to trash"})
}

func ListTrashedCategories(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var categories []models.Category
	if err := database.Database.Db.Unscoped().
		Where("user_id = ? AND deleted_at IS NOT NULL", userID).
		Order("deleted_at desc").
		Find(&categories).Error; err != nil {
		log.Printf("Error listing trashed categories: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch trashed categories")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"categories": categories})
}

func RestoreCategory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var category models.Category
	if err := db.Unscoped().
		Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", c.Params("id"), userID).
		First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Category not found in trash")
	}

	if err := db.Unscoped().Model(&category).Update("deleted_at", nil).Error; err != nil {
		log.Printf("Error restoring category: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to restore category")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Category restored"})
}

// GetCategoryStats reports count/total/avg/min/max over one category's
// transaction amounts, optionally windowed by date.
func GetCategoryStats(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}

	query := db.Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, category.ID)
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
	if err := query.Select("amount").Find(&transactions).Error; err != nil {
		log.Printf("Error loading category transactions: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch category stats")
	}

	amounts := make([]decimal.Decimal, 0, len(transactions))
	for _, t := range transactions {
		amounts = append(amounts, t.Amount)
	}
	stats := ledger.Stats(amounts)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"category": category,
		"stats": fiber.Map{
			"transaction_count": stats.Count,
			"total_amount":      stats.Total.StringFixed(2),
			"average_amount":    stats.Average.StringFixed(2),
			"min_amount":        stats.Min.StringFixed(2),
			"max_amount":        stats.Max.StringFixed(2),
		},
	})
}

// SpendingByCategory groups expenses by category over an optional window,
// largest spend first.
func SpendingByCategory(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	query := db.Model(&models.Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.transaction_type = ?", userID, models.TransactionTypeExpense).
		Where("categories.deleted_at IS NULL")
	if startDate := c.Query("start_date"); startDate != "" {
		if d, err := utils.ParseDate(startDate); err == nil {
			query = query.Where("transactions.transaction_date >= ?", d)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if d, err := utils.ParseDate(endDate); err == nil {
			query = query.Where("transactions.transaction_date <= ?", d)
		}
	}

	var rows []struct {
		CategoryID   uint
		CategoryName string
		CategoryType string
		Amount       decimal.Decimal
	}
	if err := query.
		Select("transactions.category_id, categories.category_name, categories.category_type, transactions.amount").
		Find(&rows).Error; err != nil {
		log.Printf("Error loading spending rows: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch spending breakdown")
	}

	entries := make([]ledger.CategoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, ledger.CategoryEntry{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			CategoryType: r.CategoryType,
			Amount:       r.Amount,
		})
	}

	totals := ledger.TopCategories(entries, 0)
	response := make([]fiber.Map, 0, len(totals))
	for _, t := range totals {
		response = append(response, fiber.Map{
			"category_id":       t.CategoryID,
			"category_name":     t.CategoryName,
			"category_type":     t.CategoryType,
			"total_amount":      t.TotalAmount.StringFixed(2),
			"transaction_count": t.TransactionCount,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"spending": response})
}
