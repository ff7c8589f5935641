package userController

import (
	"finbook/database"
	"finbook/middleware"
	"finbook/models"
	userValidator "finbook/validators/user"
	"log"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	if reqData.Username != nil && *reqData.Username != user.Username {
		var existing models.User
		if err := db.Where("username = ? AND id != ?", *reqData.Username, userID).First(&existing).Error; err == nil {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Username is already taken")
		}
		user.Username = *reqData.Username
	}
	if reqData.Email != nil && *reqData.Email != user.Email {
		var existing models.User
		if err := db.Where("email = ? AND id != ?", *reqData.Email, userID).First(&existing).Error; err == nil {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Email is already registered")
		}
		user.Email = *reqData.Email
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}

// GetUserStats counts what the user has built up across the app.
func GetUserStats(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	var accounts, transactions, categories, budgets, trades int64
	db.Model(&models.Account{}).Where("user_id = ?", userID).Count(&accounts)
	db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&transactions)
	db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&categories)
	db.Model(&models.Budget{}).Where("user_id = ?", userID).Count(&budgets)
	db.Model(&models.StockTrade{}).Where("user_id = ?", userID).Count(&trades)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"stats": fiber.Map{
			"accounts":     accounts,
			"transactions": transactions,
			"categories":   categories,
			"budgets":      budgets,
			"trades":       trades,
			"member_since": user.CreatedAt,
		},
	})
}
