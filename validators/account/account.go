package accountValidator

import (
	"finbook/middleware"

	"github.com/gofiber/fiber/v2"
)

// AccountRequest covers create and update payloads.
type AccountRequest struct {
	AccountName    string  `json:"account_name" validate:"required,max=100"`
	AccountType    string  `json:"account_type" validate:"required,max=50"`
	InitialBalance float64 `json:"initial_balance"`
}

// Account validator middleware
func Account() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AccountRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedAccount", reqData)
		return c.Next()
	}
}
