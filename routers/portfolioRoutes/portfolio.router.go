package portfolioRoutes

import (
	portfolioController "finbook/controllers/portfolio"
	"finbook/middleware"
	portfolioValidator "finbook/validators/portfolio"

	"github.com/gofiber/fiber/v2"
)

func SetupPortfolioRoutes(app *fiber.App) {
	portfolioGroup := app.Group("/portfolio", middleware.JWTMiddleware)

	portfolioGroup.Post("/trades", portfolioValidator.Trade(), portfolioController.CreateTrade)
	portfolioGroup.Get("/trades", portfolioController.ListTrades)
	portfolioGroup.Get("/trades/trash", portfolioController.ListTrashedTrades)
	portfolioGroup.Get("/trades/:id", portfolioController.GetTrade)
	portfolioGroup.Put("/trades/:id", portfolioValidator.Trade(), portfolioController.UpdateTrade)
	portfolioGroup.Delete("/trades/:id", portfolioController.DeleteTrade)
	portfolioGroup.Put("/trades/:id/restore", portfolioController.RestoreTrade)

	portfolioGroup.Get("/holdings", portfolioController.GetHoldings)

	portfolioGroup.Get("/securities", portfolioController.ListSecurities)
	portfolioGroup.Post("/securities", portfolioValidator.Security(), portfolioController.CreateSecurity)
}
