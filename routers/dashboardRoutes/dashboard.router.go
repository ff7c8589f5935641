package dashboardRoutes

import (
	dashboardController "finbook/controllers/dashboard"
	"finbook/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard", middleware.JWTMiddleware)

	dashboardGroup.Get("/summary", dashboardController.GetDashboard)
}
