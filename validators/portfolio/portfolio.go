package portfolioValidator

import (
	"finbook/middleware"

	"github.com/gofiber/fiber/v2"
)

// TradeRequest is the payload for recording a buy or sell.
type TradeRequest struct {
	AccountID     uint    `json:"account_id" validate:"required"`
	TickerSymbol  string  `json:"ticker_symbol" validate:"required,max=20"`
	SecurityName  string  `json:"security_name" validate:"max=100"`
	AssetType     string  `json:"asset_type" validate:"omitempty,max=50"`
	TradeType     string  `json:"trade_type" validate:"required,oneof=BUY SELL"`
	Quantity      float64 `json:"quantity" validate:"required,gt=0"`
	PricePerShare float64 `json:"price_per_share" validate:"required,gt=0"`
	TradeDate     string  `json:"trade_date" validate:"omitempty,datetime=2006-01-02"`
}

// SecurityRequest is the payload for registering a security.
type SecurityRequest struct {
	TickerSymbol string `json:"ticker_symbol" validate:"required,max=20"`
	SecurityName string `json:"security_name" validate:"required,max=100"`
	AssetType    string `json:"asset_type" validate:"omitempty,max=50"`
}

// Trade validator middleware
func Trade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TradeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedTrade", reqData)
		return c.Next()
	}
}

// Security validator middleware
func Security() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SecurityRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.FieldErrors(err))
		}

		c.Locals("validatedSecurity", reqData)
		return c.Next()
	}
}
