package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction rows are append-only; nothing updates or deletes them.
type Transaction struct {
	TransactionID uint            `gorm:"primaryKey" json:"transaction_id"`
	FarmID        uint            `gorm:"index" json:"farm_id"`
	ItemType      string          `json:"item_type"`
	Quantity      int64           `json:"quantity"`
	TotalValue    decimal.Decimal `gorm:"type:decimal(20,4)" json:"total_value"`
	Action        string          `json:"action"` // sell|buy
	CreatedAt     time.Time
}
