package transactionRoutes

import (
	transactionController "finbook/controllers/transaction"
	"finbook/middleware"
	transactionValidator "finbook/validators/transaction"

	"github.com/gofiber/fiber/v2"
)

func SetupTransactionRoutes(app *fiber.App) {
	transactionGroup := app.Group("/transactions", middleware.JWTMiddleware)

	transactionGroup.Post("/", transactionValidator.Create(), transactionController.CreateTransaction)
	transactionGroup.Post("/transfer", transactionValidator.Transfer(), transactionController.CreateTransfer)
	transactionGroup.Get("/", transactionController.ListTransactions)
	transactionGroup.Get("/trash", transactionController.ListTrashedTransactions)
	transactionGroup.Get("/stats/summary", transactionController.TransactionSummary)
	transactionGroup.Get("/:id", transactionController.GetTransaction)
	transactionGroup.Put("/:id", transactionValidator.Update(), transactionController.UpdateTransaction)
	transactionGroup.Delete("/:id", transactionController.DeleteTransaction)
	transactionGroup.Put("/:id/restore", transactionController.RestoreTransaction)
}
