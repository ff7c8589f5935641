package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome   = "INCOME"
	TransactionTypeExpense  = "EXPENSE"
	TransactionTypeTransfer = "TRANSFER"
)

// Transaction model. Amount is always stored as a non-negative magnitude, the
// sign is implied by TransactionType. The two legs of a transfer share one
// TransferGroupID.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	AccountID       uint            `gorm:"index;not null" json:"account_id"`
	CategoryID      *uint           `gorm:"index" json:"category_id"`
	TransactionType string          `gorm:"type:varchar(10);not null" json:"transaction_type"` // INCOME/EXPENSE/TRANSFER
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description     string          `gorm:"type:text" json:"description"`
	TransactionDate time.Time       `gorm:"type:date;index;not null" json:"transaction_date"`
	TransferGroupID *string         `gorm:"type:varchar(36);index" json:"transfer_group_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`

	Account  Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
