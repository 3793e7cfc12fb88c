package entities

import "time"

type WaterTank struct {
	TankID       uint       `gorm:"primaryKey" json:"tank_id"`
	FarmID       uint       `gorm:"index" json:"farm_id"`
	Capacity     int64      `json:"capacity"`
	CurrentLevel int64      `json:"current_level"`
	LastRefillAt *time.Time `json:"last_refill_at"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
