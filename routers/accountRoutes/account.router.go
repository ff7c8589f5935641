package accountRoutes

import (
	accountController "finbook/controllers/account"
	"finbook/middleware"
	accountValidator "finbook/validators/account"

	"github.com/gofiber/fiber/v2"
)

func SetupAccountRoutes(app *fiber.App) {
	accountGroup := app.Group("/accounts", middleware.JWTMiddleware)

	accountGroup.Post("/", accountValidator.Account(), accountController.CreateAccount)
	accountGroup.Get("/", accountController.ListAccounts)
	accountGroup.Get("/trash", accountController.ListTrashedAccounts)
	accountGroup.Get("/:id", accountController.GetAccount)
	accountGroup.Put("/:id", accountValidator.Account(), accountController.UpdateAccount)
	accountGroup.Delete("/:id", accountController.DeleteAccount)
	accountGroup.Put("/:id/restore", accountController.RestoreAccount)
}
