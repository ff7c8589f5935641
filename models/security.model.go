package models

import (
	"time"

	"gorm.io/gorm"
)

// Security model, shared across users. Ticker symbols are stored upper-cased.
type Security struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TickerSymbol string         `gorm:"uniqueIndex;not null" json:"ticker_symbol"`
	SecurityName string         `gorm:"not null" json:"security_name"`
	AssetType    string         `gorm:"default:'Stock'" json:"asset_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
