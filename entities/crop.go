package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Crop is read-only reference data loaded at startup.
type Crop struct {
	CropID         uint            `gorm:"primaryKey" json:"crop_id"`
	Name           string          `gorm:"uniqueIndex" json:"name"`
	YieldPerHa     int64           `json:"yield_per_ha"`
	GrowthMinutes  int             `json:"growth_minutes"`
	BaseValue      decimal.Decimal `gorm:"type:decimal(20,4)" json:"base_value"`
	EquipmentNeeds string          `json:"equipment_needs"` // comma-separated kind:subtype pairs
	CreatedAt      time.Time
}
