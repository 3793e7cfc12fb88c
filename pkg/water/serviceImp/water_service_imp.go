package serviceImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
	"github.com/JoeDalton318/farming-simulator/pkg/water/service"
)

// RefillInterval is how stale a tank may get before the sweep tops it up.
const RefillInterval = 5 * time.Minute

type waterSvc struct {
	db    *gorm.DB
	clk   clock.Clock
	locks *lockmap.LockMap // keyed by tank id, shared with husbandry
}

// New builds the water service. The lock map is shared with every consumer
// that decrements tank levels inside its own transaction, so conflicting
// draws on one tank always serialize.
func New(db *gorm.DB, clk clock.Clock, locks *lockmap.LockMap) service.WaterService {
	return &waterSvc{db: db, clk: clk, locks: locks}
}

func (s *waterSvc) Tank(tankID uint) (*entities.WaterTank, error) {
	var t entities.WaterTank
	if err := s.db.First(&t, tankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.New(fault.NotFound, "water tank %d not found", tankID)
		}
		return nil, err
	}
	return &t, nil
}

func (s *waterSvc) Level(tankID uint) (*service.LevelReport, error) {
	t, err := s.Tank(tankID)
	if err != nil {
		return nil, err
	}
	rep := &service.LevelReport{
		TankID:       t.TankID,
		CurrentLevel: t.CurrentLevel,
		Capacity:     t.Capacity,
		Percentage:   int(t.CurrentLevel * 100 / t.Capacity),
	}
	if t.LastRefillAt != nil {
		rep.LastRefillAt = t.LastRefillAt.Format(time.RFC3339)
	}
	return rep, nil
}

func (s *waterSvc) Consume(tankID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fault.New(fault.Validation, "water amount must be positive, got %d", amount)
	}
	s.locks.Lock(tankID)
	defer s.locks.Unlock(tankID)

	var level int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		level, err = Draw(tx, tankID, amount)
		return err
	})
	return level, err
}

func (s *waterSvc) Refill(tankID uint) (int64, error) {
	s.locks.Lock(tankID)
	defer s.locks.Unlock(tankID)

	var level int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t entities.WaterTank
		if err := tx.First(&t, tankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.New(fault.NotFound, "water tank %d not found", tankID)
			}
			return err
		}
		now := s.clk.Now()
		t.CurrentLevel = t.Capacity
		t.LastRefillAt = &now
		level = t.CurrentLevel
		return tx.Save(&t).Error
	})
	return level, err
}

func (s *waterSvc) AutoRefill() (int, error) {
	cutoff := s.clk.Now().Add(-RefillInterval)
	var stale []entities.WaterTank
	err := s.db.Where("last_refill_at IS NULL OR last_refill_at <= ?", cutoff).Find(&stale).Error
	if err != nil {
		return 0, err
	}
	for _, t := range stale {
		if _, err := s.Refill(t.TankID); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// Draw decrements a tank inside an existing transaction. Callers must hold
// the tank's lock.
func Draw(tx *gorm.DB, tankID uint, amount int64) (int64, error) {
	var t entities.WaterTank
	if err := tx.First(&t, tankID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fault.New(fault.NotFound, "water tank %d not found", tankID)
		}
		return 0, err
	}
	if t.CurrentLevel < amount {
		return 0, fault.New(fault.ResourceUnavailable,
			"tank %d holds %dL, need %dL", tankID, t.CurrentLevel, amount)
	}
	t.CurrentLevel -= amount
	if err := tx.Save(&t).Error; err != nil {
		return 0, err
	}
	return t.CurrentLevel, nil
}
