package budgetRoutes

import (
	budgetController "finbook/controllers/budget"
	"finbook/middleware"
	budgetValidator "finbook/validators/budget"

	"github.com/gofiber/fiber/v2"
)

func SetupBudgetRoutes(app *fiber.App) {
	budgetGroup := app.Group("/budgets", middleware.JWTMiddleware)

	budgetGroup.Post("/", budgetValidator.Budget(), budgetController.CreateBudget)
	budgetGroup.Get("/", budgetController.ListBudgets)
	budgetGroup.Get("/stats/performance", budgetController.BudgetPerformance)
	budgetGroup.Get("/:id", budgetController.GetBudget)
	budgetGroup.Put("/:id", budgetValidator.Budget(), budgetController.UpdateBudget)
	budgetGroup.Delete("/:id", budgetController.DeleteBudget)
}
