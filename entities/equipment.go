package entities

import "time"

type Equipment struct {
	EquipmentID     uint       `gorm:"primaryKey" json:"equipment_id"`
	FarmID          uint       `gorm:"index" json:"farm_id"`
	Kind            string     `json:"kind"` // tractor|harvester|planter|fertilizer_spreader|plow|trailer|milking_machine|shearing_machine
	Subtype         string     `json:"subtype"`
	Available       bool       `json:"available"`
	Maintenance     bool       `json:"maintenance"`
	LastUsedAt      *time.Time `json:"last_used_at"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EquipmentLease is the durable replacement for fire-and-forget release
// timers: a lease carries its expiry and a periodic sweep releases what is
// due. Deleting the row cancels the pending auto-release.
type EquipmentLease struct {
	LeaseID     string     `gorm:"primaryKey" json:"lease_id"`
	EquipmentID uint       `gorm:"index" json:"equipment_id"`
	FarmID      uint       `gorm:"index" json:"farm_id"`
	Holder      string     `json:"holder"`
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`
	CreatedAt   time.Time
}
