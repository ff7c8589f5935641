package userRoutes

import (
	userController "finbook/controllers/user"
	"finbook/middleware"
	userValidator "finbook/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/users", middleware.JWTMiddleware)

	userGroup.Get("/profile", userController.GetProfile)
	userGroup.Put("/profile", userValidator.UpdateProfile(), userController.UpdateProfile)
	userGroup.Get("/stats", userController.GetUserStats)
}
