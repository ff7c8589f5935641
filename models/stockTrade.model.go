package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TradeTypeBuy  = "BUY"
	TradeTypeSell = "SELL"
)

// StockTrade model. Every trade also synthesizes one cash Transaction in the
// same account (EXPENSE for BUY, INCOME for SELL).
type StockTrade struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	AccountID     uint            `gorm:"index;not null" json:"account_id"`
	SecurityID    uint            `gorm:"index;not null" json:"security_id"`
	TradeType     string          `gorm:"type:varchar(4);not null" json:"trade_type"` // BUY/SELL
	Quantity      decimal.Decimal `gorm:"type:decimal(15,5);not null" json:"quantity"`
	PricePerShare decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price_per_share"`
	TradeDate     time.Time       `gorm:"type:date;index;not null" json:"trade_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	Account  Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Security Security `gorm:"foreignKey:SecurityID" json:"security,omitempty"`
}
