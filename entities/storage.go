package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StorageTypeMain      = "main"
	StorageTypeProcessed = "processed"
	StorageTypeFactory   = "factory"
)

// Storage is a bounded-capacity container. CurrentVolume is maintained by
// the ledger service and always equals the sum of its item quantities.
type Storage struct {
	StorageID     uint   `gorm:"primaryKey" json:"storage_id"`
	FarmID        uint   `gorm:"index" json:"farm_id"`
	Type          string `json:"type"` // main|processed|factory
	Capacity      int64  `json:"capacity"`
	CurrentVolume int64  `json:"current_volume"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type StorageItem struct {
	ItemID       uint            `gorm:"primaryKey" json:"item_id"`
	StorageID    uint            `gorm:"index:idx_storage_kind,unique" json:"storage_id"`
	ItemType     string          `gorm:"index:idx_storage_kind,unique" json:"item_type"`
	Quantity     int64           `json:"quantity"`
	ValuePerUnit decimal.Decimal `gorm:"type:decimal(20,4)" json:"value_per_unit"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
