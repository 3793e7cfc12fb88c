package entities

import "time"

type Greenhouse struct {
	GreenhouseID uint  `gorm:"primaryKey" json:"greenhouse_id"`
	FarmID       uint  `gorm:"index" json:"farm_id"`
	Active       bool  `json:"active"`
	WaterDraw    int64 `json:"water_draw"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
