package serviceImp

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	"github.com/JoeDalton318/farming-simulator/pkg/equipment/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
)

type equipmentSvc struct {
	db    *gorm.DB
	clk   clock.Clock
	locks *lockmap.LockMap // keyed by farm id
}

func New(db *gorm.DB, clk clock.Clock) service.EquipmentService {
	return &equipmentSvc{db: db, clk: clk, locks: lockmap.New()}
}

func (s *equipmentSvc) Fleet(farmID uint) ([]entities.Equipment, error) {
	var fleet []entities.Equipment
	err := s.db.Where("farm_id = ?", farmID).
		Order("kind ASC, subtype ASC").
		Find(&fleet).Error
	return fleet, err
}

func (s *equipmentSvc) Leases(farmID uint) ([]entities.EquipmentLease, error) {
	var leases []entities.EquipmentLease
	err := s.db.Where("farm_id = ?", farmID).Order("created_at ASC").Find(&leases).Error
	return leases, err
}

func (s *equipmentSvc) Lease(farmID uint, reqs []service.Requirement, holder string) ([]uint, error) {
	return s.lease(farmID, reqs, holder, nil)
}

func (s *equipmentSvc) LeaseWithExpiry(farmID uint, reqs []service.Requirement, ttl time.Duration, holder string) ([]uint, error) {
	expires := s.clk.Now().Add(ttl)
	return s.lease(farmID, reqs, holder, &expires)
}

func (s *equipmentSvc) lease(farmID uint, reqs []service.Requirement, holder string, expires *time.Time) ([]uint, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	s.locks.Lock(farmID)
	defer s.locks.Unlock(farmID)

	var unitIDs []uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := s.clk.Now()
		picked := map[uint]bool{}
		for _, req := range reqs {
			var unit entities.Equipment
			q := tx.Where("farm_id = ? AND kind = ? AND available = ? AND maintenance = ?",
				farmID, req.Kind, true, false)
			if req.Subtype != "" {
				q = q.Where("subtype = ?", req.Subtype)
			}
			if len(picked) > 0 {
				ids := make([]uint, 0, len(picked))
				for id := range picked {
					ids = append(ids, id)
				}
				q = q.Where("equipment_id NOT IN ?", ids)
			}
			if err := q.Order("equipment_id ASC").First(&unit).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					label := req.Kind
					if req.Subtype != "" {
						label = req.Subtype + " " + req.Kind
					}
					return fault.New(fault.ResourceUnavailable,
						"no available %s on farm %d", label, farmID)
				}
				return err
			}

			unit.Available = false
			unit.LastUsedAt = &now
			if err := tx.Save(&unit).Error; err != nil {
				return err
			}
			rec := entities.EquipmentLease{
				LeaseID:     uuid.NewString(),
				EquipmentID: unit.EquipmentID,
				FarmID:      farmID,
				Holder:      holder,
				ExpiresAt:   expires,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			picked[unit.EquipmentID] = true
			unitIDs = append(unitIDs, unit.EquipmentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unitIDs, nil
}

// Release puts a unit back in the pool and cancels any pending auto-release
// by deleting its lease record. Releasing an already available unit is a
// no-op.
func (s *equipmentSvc) Release(unitID uint) error {
	unit, err := s.loadUnit(unitID)
	if err != nil {
		return err
	}
	s.locks.Lock(unit.FarmID)
	defer s.locks.Unlock(unit.FarmID)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var u entities.Equipment
		if err := tx.First(&u, unitID).Error; err != nil {
			return unitErr(unitID, err)
		}
		if err := tx.Where("equipment_id = ?", unitID).Delete(&entities.EquipmentLease{}).Error; err != nil {
			return err
		}
		if u.Available {
			return nil
		}
		u.Available = true
		return tx.Save(&u).Error
	})
}

func (s *equipmentSvc) MarkMaintenance(unitID uint) error {
	return s.setMaintenance(unitID, true)
}

func (s *equipmentSvc) ClearMaintenance(unitID uint) error {
	return s.setMaintenance(unitID, false)
}

func (s *equipmentSvc) setMaintenance(unitID uint, flag bool) error {
	unit, err := s.loadUnit(unitID)
	if err != nil {
		return err
	}
	s.locks.Lock(unit.FarmID)
	defer s.locks.Unlock(unit.FarmID)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var u entities.Equipment
		if err := tx.First(&u, unitID).Error; err != nil {
			return unitErr(unitID, err)
		}
		u.Maintenance = flag
		if !flag {
			now := s.clk.Now()
			u.LastMaintenance = &now
		}
		return tx.Save(&u).Error
	})
}

// ExpireLeases is the periodic sweep standing in for per-lease timers. A
// lease released manually before its expiry no longer exists, so a unit can
// never be auto-released twice.
func (s *equipmentSvc) ExpireLeases() (int, error) {
	var due []entities.EquipmentLease
	now := s.clk.Now()
	if err := s.db.Where("expires_at IS NOT NULL AND expires_at <= ?", now).Find(&due).Error; err != nil {
		return 0, err
	}

	released := 0
	for _, lease := range due {
		if err := s.Release(lease.EquipmentID); err != nil {
			// A failed release leaves the unit leased; the next sweep or a
			// manual release picks it up.
			continue
		}
		released++
	}
	return released, nil
}

func (s *equipmentSvc) loadUnit(unitID uint) (*entities.Equipment, error) {
	var u entities.Equipment
	if err := s.db.First(&u, unitID).Error; err != nil {
		return nil, unitErr(unitID, err)
	}
	return &u, nil
}

func unitErr(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fault.New(fault.NotFound, "equipment %d not found", id)
	}
	return err
}
