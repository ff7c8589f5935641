package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account model
type Account struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"index;not null" json:"user_id"`
	AccountName    string          `gorm:"not null" json:"account_name"`
	AccountType    string          `gorm:"not null" json:"account_type"` // Checking, Savings, Investment, Loan, ...
	InitialBalance decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"initial_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
