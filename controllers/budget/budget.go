package budgetController

import (
	"finbook/database"
	"finbook/ledger"
	"finbook/middleware"
	"finbook/models"
	"finbook/utils"
	budgetValidator "finbook/validators/budget"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// spentInWindow sums the user's active expense transactions for a category
// inside the budget window.
func spentInWindow(db *gorm.DB, userID, categoryID uint, window ledger.Window) (decimal.Decimal, error) {
	var transactions []models.Transaction
	err := db.Select("amount").
		Where("user_id = ? AND category_id = ? AND transaction_type = ?",
			userID, categoryID, models.TransactionTypeExpense).
		Where("transaction_date >= ? AND transaction_date <= ?", window.Start, window.End).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	var spent decimal.Decimal
	for _, t := range transactions {
		spent = spent.Add(t.Amount)
	}
	return spent, nil
}

func budgetResponse(db *gorm.DB, budget models.Budget) (fiber.Map, error) {
	window := ledger.ResolveWindow(budget.Period, budget.StartDate, budget.EndDate, time.Now())

	spent, err := spentInWindow(db, budget.UserID, budget.CategoryID, window)
	if err != nil {
		return nil, err
	}
	eval := ledger.Evaluate(budget.Amount, spent)

	return fiber.Map{
		"id":          budget.ID,
		"category_id": budget.CategoryID,
		"category":    budget.Category,
		"amount":      budget.Amount.StringFixed(2),
		"period":      budget.Period,
		"start_date":  utils.FormatDate(budget.StartDate),
		"end_date":    formatEndDate(budget.EndDate),
		"is_active":   budget.IsActive,
		"current_period": fiber.Map{
			"start": utils.FormatDate(window.Start),
			"end":   utils.FormatDate(window.End),
		},
		"spent":           eval.Spent.StringFixed(2),
		"remaining":       eval.Remaining.StringFixed(2),
		"percentage_used": eval.PercentageUsed.StringFixed(2),
		"is_over_budget":  eval.IsOverBudget,
		"status":          eval.Status,
		"created_at":      budget.CreatedAt,
		"updated_at":      budget.UpdatedAt,
	}, nil
}

func formatEndDate(endDate *time.Time) interface{} {
	if endDate == nil {
		return nil
	}
	return utils.FormatDate(*endDate)
}

func CreateBudget(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedBudget").(*budgetValidator.BudgetRequest)
	db := database.Database.Db

	// Budgets only make sense on the user's own expense categories.
	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", reqData.CategoryID, userID).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}
	if category.CategoryType != models.CategoryTypeExpense {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Budgets can only be set on expense categories")
	}

	var existing models.Budget
	if err := db.Where("user_id = ? AND category_id = ? AND period = ? AND is_active = ?",
		userID, reqData.CategoryID, reqData.Period, true).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "An active budget already exists for this category and period")
	}

	startDate, err := utils.ParseDateOr(reqData.StartDate, time.Now())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid start_date")
	}

	var endDate *time.Time
	if reqData.EndDate != "" {
		d, err := utils.ParseDate(reqData.EndDate)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid end_date")
		}
		if d.Before(startDate) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "end_date must be after start_date")
		}
		endDate = &d
	}

	budget := models.Budget{
		UserID:     userID,
		CategoryID: reqData.CategoryID,
		Amount:     decimal.NewFromFloat(reqData.Amount).Round(2),
		Period:     reqData.Period,
		StartDate:  startDate,
		EndDate:    endDate,
		IsActive:   true,
	}

	if err := db.Create(&budget).Error; err != nil {
		log.Printf("Error creating budget: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create budget")
	}

	budget.Category = category
	response, err := budgetResponse(db, budget)
	if err != nil {
		log.Printf("Error evaluating budget: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create budget")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"budget": response})
}

func ListBudgets(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	query := db.Preload("Category").Where("user_id = ?", userID)
	if active := c.Query("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var budgets []models.Budget
	if err := query.Order("id asc").Find(&budgets).Error; err != nil {
		log.Printf("Error listing budgets: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch budgets")
	}

	response := make([]fiber.Map, 0, len(budgets))
	for _, budget := range budgets {
		item, err := budgetResponse(db, budget)
		if err != nil {
			log.Printf("Error evaluating budget %d: %v", budget.ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch budgets")
		}
		response = append(response, item)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"budgets": response})
}

func GetBudget(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var budget models.Budget
	if err := db.Preload("Category").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&budget).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Budget not found")
	}

	response, err := budgetResponse(db, budget)
	if err != nil {
		log.Printf("Error evaluating budget %d: %v", budget.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch budget")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"budget": response})
}

func UpdateBudget(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedBudget").(*budgetValidator.BudgetRequest)
	db := database.Database.Db

	var budget models.Budget
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&budget).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Budget not found")
	}

	var category models.Category
	if err := db.Where("id = ? AND user_id = ?", reqData.CategoryID, userID).First(&category).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}
	if category.CategoryType != models.CategoryTypeExpense {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Budgets can only be set on expense categories")
	}

	// Uniqueness check skips the budget being edited.
	var existing models.Budget
	if err := db.Where("user_id = ? AND category_id = ? AND period = ? AND is_active = ? AND id != ?",
		userID, reqData.CategoryID, reqData.Period, true, budget.ID).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "An active budget already exists for this category and period")
	}

	startDate, err := utils.ParseDateOr(reqData.StartDate, budget.StartDate)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid start_date")
	}

	var endDate *time.Time
	if reqData.EndDate != "" {
		d, err := utils.ParseDate(reqData.EndDate)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid end_date")
		}
		if d.Before(startDate) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "end_date must be after start_date")
		}
		endDate = &d
	}

	budget.CategoryID = reqData.CategoryID
	budget.Amount = decimal.NewFromFloat(reqData.Amount).Round(2)
	budget.Period = reqData.Period
	budget.StartDate = startDate
	budget.EndDate = endDate

	if err := db.Save(&budget).Error; err != nil {
		log.Printf("Error updating budget: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update budget")
	}

	budget.Category = category
	response, err := budgetResponse(db, budget)
	if err != nil {
		log.Printf("Error evaluating budget %d: %v", budget.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update budget")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"budget": response})
}

// DeleteBudget removes the budget outright. Budgets have no trash.
func DeleteBudget(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var budget models.Budget
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&budget).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Budget not found")
	}

	if err := db.Delete(&budget).Error; err != nil {
		log.Printf("Error deleting budget: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete budget")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Budget deleted"})
}

// BudgetPerformance rolls all active budgets into one overall figure set.
func BudgetPerformance(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var budgets []models.Budget
	if err := db.Preload("Category").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id asc").
		Find(&budgets).Error; err != nil {
		log.Printf("Error listing budgets: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch budget performance")
	}

	var totalBudgeted, totalSpent decimal.Decimal
	overBudgetCount := 0
	items := make([]fiber.Map, 0, len(budgets))

	for _, budget := range budgets {
		window := ledger.ResolveWindow(budget.Period, budget.StartDate, budget.EndDate, time.Now())
		spent, err := spentInWindow(db, userID, budget.CategoryID, window)
		if err != nil {
			log.Printf("Error evaluating budget %d: %v", budget.ID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch budget performance")
		}
		eval := ledger.Evaluate(budget.Amount, spent)

		totalBudgeted = totalBudgeted.Add(budget.Amount)
		totalSpent = totalSpent.Add(spent)
		if eval.IsOverBudget {
			overBudgetCount++
		}

		items = append(items, fiber.Map{
			"id":              budget.ID,
			"category_name":   budget.Category.CategoryName,
			"period":          budget.Period,
			"amount":          budget.Amount.StringFixed(2),
			"spent":           eval.Spent.StringFixed(2),
			"remaining":       eval.Remaining.StringFixed(2),
			"percentage_used": eval.PercentageUsed.StringFixed(2),
			"status":          eval.Status,
		})
	}

	overall := ledger.Evaluate(totalBudgeted, totalSpent)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"performance": fiber.Map{
			"total_budgeted":    totalBudgeted.StringFixed(2),
			"total_spent":       totalSpent.StringFixed(2),
			"total_remaining":   overall.Remaining.StringFixed(2),
			"percentage_used":   overall.PercentageUsed.StringFixed(2),
			"budget_count":      len(budgets),
			"over_budget_count": overBudgetCount,
			"budgets":           items,
		},
	})
}
