package categoryRoutes

import (
	categoryController "finbook/controllers/category"
	"finbook/middleware"
	categoryValidator "finbook/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/categories", middleware.JWTMiddleware)

	categoryGroup.Post("/", categoryValidator.Category(), categoryController.CreateCategory)
	categoryGroup.Get("/", categoryController.ListCategories)
	categoryGroup.Get("/trash", categoryController.ListTrashedCategories)
	categoryGroup.Get("/stats/spending", categoryController.SpendingByCategory)
	categoryGroup.Get("/:id", categoryController.GetCategory)
	categoryGroup.Get("/:id/stats", categoryController.GetCategoryStats)
	categoryGroup.Put("/:id", categoryValidator.Category(), categoryController.UpdateCategory)
	categoryGroup.Delete("/:id", categoryController.DeleteCategory)
	categoryGroup.Put("/:id/restore", categoryController.RestoreCategory)
}
