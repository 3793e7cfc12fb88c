package service

import "github.com/JoeDalton318/farming-simulator/entities"

type LevelReport struct {
	TankID       uint   `json:"tank_id"`
	CurrentLevel int64  `json:"current_level"`
	Capacity     int64  `json:"capacity"`
	Percentage   int    `json:"percentage"`
	LastRefillAt string `json:"last_refill_at,omitempty"`
}

// WaterService owns the reservoirs every producer draws from.
type WaterService interface {
	Tank(tankID uint) (*entities.WaterTank, error)
	Level(tankID uint) (*LevelReport, error)
	Consume(tankID uint, amount int64) (int64, error)
	Refill(tankID uint) (int64, error)

	// AutoRefill tops up every tank whose last refill is older than the
	// refill interval and returns how many tanks it touched.
	AutoRefill() (int, error)
}
