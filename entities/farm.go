package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Farm struct {
	FarmID    uint            `gorm:"primaryKey" json:"farm_id"`
	Name      string          `json:"name"`
	Cash      decimal.Decimal `gorm:"type:decimal(20,4)" json:"cash"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
