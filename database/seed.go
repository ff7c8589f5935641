package database

import (
	"finbook/models"
	"log"

	"gorm.io/gorm"
)

// DefaultCategories are the template categories (no owner) copied to every
// new user at registration.
var DefaultCategories = []models.Category{
	{CategoryName: "Food & Dining", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Transportation", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Shopping", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Entertainment", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Bills & Utilities", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Healthcare", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Education", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Travel", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Personal Care", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Home & Garden", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Insurance", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Taxes", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Miscellaneous", CategoryType: models.CategoryTypeExpense},
	{CategoryName: "Salary", CategoryType: models.CategoryTypeIncome},
	{CategoryName: "Freelance", CategoryType: models.CategoryTypeIncome},
	{CategoryName: "Investment", CategoryType: models.CategoryTypeIncome},
	{CategoryName: "Business", CategoryType: models.CategoryTypeIncome},
	{CategoryName: "Rental", CategoryType: models.CategoryTypeIncome},
	{CategoryName: "Gift", CategoryType: models.CategoryTypeIncome},
	{CategoryName: "Other Income", CategoryType: models.CategoryTypeIncome},
}

var defaultSecurities = []models.Security{
	{TickerSymbol: "RELIANCE.NS", SecurityName: "Reliance Industries Limited", AssetType: "Stock"},
	{TickerSymbol: "TCS.NS", SecurityName: "Tata Consultancy Services Limited", AssetType: "Stock"},
	{TickerSymbol: "HDFCBANK.NS", SecurityName: "HDFC Bank Limited", AssetType: "Stock"},
	{TickerSymbol: "INFY.NS", SecurityName: "Infosys Limited", AssetType: "Stock"},
	{TickerSymbol: "HINDUNILVR.NS", SecurityName: "Hindustan Unilever Limited", AssetType: "Stock"},
	{TickerSymbol: "ICICIBANK.NS", SecurityName: "ICICI Bank Limited", AssetType: "Stock"},
	{TickerSymbol: "KOTAKBANK.NS", SecurityName: "Kotak Mahindra Bank Limited", AssetType: "Stock"},
	{TickerSymbol: "BHARTIARTL.NS", SecurityName: "Bharti Airtel Limited", AssetType: "Stock"},
	{TickerSymbol: "ITC.NS", SecurityName: "ITC Limited", AssetType: "Stock"},
	{TickerSymbol: "SBIN.NS", SecurityName: "State Bank of India", AssetType: "Stock"},
}

// SeedDefaults inserts template categories and common securities on first boot.
func SeedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&models.Category{}).Where("user_id IS NULL").Count(&count)
	if count == 0 {
		categories := make([]models.Category, len(DefaultCategories))
		copy(categories, DefaultCategories)
		if err := db.Create(&categories).Error; err != nil {
			log.Printf("Error seeding default categories: %v", err)
		}
	}

	db.Model(&models.Security{}).Count(&count)
	if count == 0 {
		securities := make([]models.Security, len(defaultSecurities))
		copy(securities, defaultSecurities)
		if err := db.Create(&securities).Error; err != nil {
			log.Printf("Error seeding securities: %v", err)
		}
	}
}
