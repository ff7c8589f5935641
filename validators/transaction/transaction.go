package transactionValidator

import (
	"finbook/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateRequest is the payload for recording an income or expense.
type CreateRequest struct {
	AccountID       uint    `json:"account_id" validate:"required"`
	CategoryID      *uint   `json:"category_id"`
	TransactionType string  `json:"transaction_type" validate:"required,oneof=INCOME EXPENSE"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Description     string  `json:"description" validate:"max=255"`
	TransactionDate string  `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateRequest is the payload for editing a transaction. All fields optional.
type UpdateRequest struct {
	AccountID       *uint    `json:"account_id"`
	CategoryID      *uint    `json:"category_id"`
	TransactionType *string  `json:"transaction_type" validate:"omitempty,oneof=INCOME EXPENSE"`
	Amount          *float64 `json:"amount" validate:"omitempty,gt=0"`
	Description     *string  `json:"description" validate:"omitempty,max=255"`
	TransactionDate *string  `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
}

// TransferRequest is the payload for moving money between two accounts.
type TransferRequest struct {
	FromAccountID   uint    `json:"from_account_id" validate:"required"`
	ToAccountID     uint    `json:"to_account_id" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Description     string  `json:"description" validate:"max=255"`
	TransactionDate string  `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
}

// Create validator middleware
func Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedTransaction", reqData)
		return c.Next()
	}
}

// Update validator middleware
func Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedTransactionUpdate", reqData)
		return c.Next()
	}
}

// Transfer validator middleware
func Transfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TransferRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		if reqData.FromAccountID == reqData.ToAccountID {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Cannot transfer to the same account")
		}

		c.Locals("validatedTransfer", reqData)
		return c.Next()
	}
}
