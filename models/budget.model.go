package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BudgetPeriodMonthly = "monthly"
	BudgetPeriodYearly  = "yearly"
	BudgetPeriodCustom  = "custom"
)

// Budget model. Budgets are hard-deleted, so no DeletedAt column here.
// At most one active budget may exist per (user, category, period).
type Budget struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"index;not null" json:"user_id"`
	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Period     string          `gorm:"type:varchar(10);not null" json:"period"` // monthly/yearly/custom
	StartDate  time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate    *time.Time      `gorm:"type:date" json:"end_date"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
