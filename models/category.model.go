package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CategoryTypeIncome  = "Income"
	CategoryTypeExpense = "Expense"
)

// Category model. A nil UserID marks a template category that is copied to
// every new user at registration.
type Category struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       *uint          `gorm:"index" json:"user_id"`
	CategoryName string         `gorm:"not null" json:"category_name"`
	CategoryType string         `gorm:"type:varchar(10);not null" json:"category_type"` // Income / Expense
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
