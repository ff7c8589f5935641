package main

import (
	"finbook/config"
	"finbook/database"
	accountRoutes "finbook/routers/accountRoutes"
	authRoutes "finbook/routers/authRoutes"
	budgetRoutes "finbook/routers/budgetRoutes"
	categoryRoutes "finbook/routers/categoryRoutes"
	dashboardRoutes "finbook/routers/dashboardRoutes"
	portfolioRoutes "finbook/routers/portfolioRoutes"
	transactionRoutes "finbook/routers/transactionRoutes"
	userRoutes "finbook/routers/userRoutes"
	"finbook/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	accountRoutes.SetupAccountRoutes(app)
	transactionRoutes.SetupTransactionRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	budgetRoutes.SetupBudgetRoutes(app)
	portfolioRoutes.SetupPortfolioRoutes(app)
	dashboardRoutes.SetupDashboardRoutes(app)

	utils.StartBudgetScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
