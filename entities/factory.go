package entities

import "time"

type Factory struct {
	FactoryID      uint       `gorm:"primaryKey" json:"factory_id"`
	FarmID         uint       `gorm:"index" json:"farm_id"`
	Kind           string     `json:"kind"`
	Operational    bool       `json:"operational"`
	ThroughputRate int64      `json:"throughput_rate"` // input litres per time unit
	WaterDraw      int64      `json:"water_draw"`
	StorageID      uint       `json:"storage_id"`
	LastMaintained *time.Time `json:"last_maintained"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
