package categoryValidator

import (
	"finbook/middleware"

	"github.com/gofiber/fiber/v2"
)

// CategoryRequest covers create and update payloads.
type CategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,max=100"`
	CategoryType string `json:"category_type" validate:"required,oneof=Income Expense"`
}

// Category validator middleware
func Category() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}
