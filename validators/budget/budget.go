package budgetValidator

import (
	"finbook/middleware"
	"finbook/models"

	"github.com/gofiber/fiber/v2"
)

// BudgetRequest covers create and update payloads.
type BudgetRequest struct {
	CategoryID uint    `json:"category_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Period     string  `json:"period" validate:"required,oneof=monthly yearly custom"`
	StartDate  string  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Budget validator middleware
func Budget() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BudgetRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		// Custom periods need an explicit window.
		if reqData.Period == models.BudgetPeriodCustom && (reqData.StartDate == "" || reqData.EndDate == "") {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Custom period budgets require start_date and end_date")
		}

		c.Locals("validatedBudget", reqData)
		return c.Next()
	}
}
