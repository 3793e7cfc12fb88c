package service

import (
	"time"

	"github.com/JoeDalton318/farming-simulator/entities"
)

// Requirement names one machine a job needs. An empty Subtype accepts any
// unit of the kind; a set Subtype demands that exact variant, so a grape
// planting run cannot borrow a standard planter.
type Requirement struct {
	Kind    string `json:"kind"`
	Subtype string `json:"subtype,omitempty"`
}

// EquipmentService is the per-farm machine pool. Leasing is all-or-nothing:
// either one eligible unit per requirement is reserved, or nothing is.
// Timed leases carry an expiry timestamp and are released by ExpireLeases,
// never by a background timer; releasing early deletes the lease record and
// with it the pending auto-release.
type EquipmentService interface {
	Fleet(farmID uint) ([]entities.Equipment, error)
	Leases(farmID uint) ([]entities.EquipmentLease, error)

	Lease(farmID uint, reqs []Requirement, holder string) ([]uint, error)
	LeaseWithExpiry(farmID uint, reqs []Requirement, ttl time.Duration, holder string) ([]uint, error)
	Release(unitID uint) error

	MarkMaintenance(unitID uint) error
	ClearMaintenance(unitID uint) error

	// ExpireLeases releases every lease due at the current clock reading and
	// returns how many units went back to the pool.
	ExpireLeases() (int, error)
}
