package serviceImp

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/catalog"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	equipment "github.com/JoeDalton318/farming-simulator/pkg/equipment/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/field/service"
	ledger "github.com/JoeDalton318/farming-simulator/pkg/ledger/service"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
)

// transitions is the full cultivation table; anything else is rejected.
var transitions = map[string][]string{
	entities.StageFallow:     {entities.StagePlowed},
	entities.StagePlowed:     {entities.StageSeeded},
	entities.StageSeeded:     {entities.StageFertilized, entities.StageReady},
	entities.StageFertilized: {entities.StageReady},
	entities.StageReady:      {entities.StageFallow},
}

func canTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type fieldSvc struct {
	db        *gorm.DB
	clk       clock.Clock
	crops     *catalog.Catalog
	pool      equipment.EquipmentService
	ledger    ledger.LedgerService
	actionDur time.Duration
	locks     *lockmap.LockMap // keyed by field id
}

func New(db *gorm.DB, clk clock.Clock, crops *catalog.Catalog, pool equipment.EquipmentService,
	led ledger.LedgerService, actionDur time.Duration) service.FieldService {
	return &fieldSvc{
		db: db, clk: clk, crops: crops, pool: pool, ledger: led,
		actionDur: actionDur, locks: lockmap.New(),
	}
}

func (s *fieldSvc) CreateField(farmID uint) (*entities.Field, error) {
	var farm entities.Farm
	if err := s.db.First(&farm, farmID).Error; err != nil {
		return nil, fault.New(fault.NotFound, "farm %d not found", farmID)
	}

	var last entities.Field
	number := 1
	if err := s.db.Where("farm_id = ?", farmID).Order("number DESC").First(&last).Error; err == nil {
		number = last.Number + 1
	}
	f := &entities.Field{FarmID: farmID, Number: number, SizeHa: 1.0, Stage: entities.StageFallow}
	if err := s.db.Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) Status(fieldID uint) (*service.Status, error) {
	f, err := s.load(fieldID)
	if err != nil {
		return nil, err
	}
	st := &service.Status{Field: *f, EffectiveStage: f.Stage, GrowthDueAt: f.ReadyAt}
	if growthDue(f, s.clk.Now()) {
		st.EffectiveStage = entities.StageReady
	}
	return st, nil
}

func (s *fieldSvc) History(fieldID uint) ([]entities.FieldHistory, error) {
	if _, err := s.load(fieldID); err != nil {
		return nil, err
	}
	var hist []entities.FieldHistory
	err := s.db.Where("field_id = ?", fieldID).Order("created_at DESC").Limit(20).Find(&hist).Error
	return hist, err
}

func (s *fieldSvc) Plow(fieldID uint) (*entities.Field, error) {
	s.locks.Lock(fieldID)
	defer s.locks.Unlock(fieldID)

	f, err := s.load(fieldID)
	if err != nil {
		return nil, err
	}
	if err := assertTransition(f, entities.StagePlowed); err != nil {
		return nil, err
	}

	s.clk.Sleep(s.actionDur)

	now := s.clk.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.record(tx, f, "plow", f.Stage, entities.StagePlowed, 0); err != nil {
			return err
		}
		f.Stage = entities.StagePlowed
		f.LastActionAt = &now
		return tx.Save(f).Error
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) Plant(fieldID uint, cropName string) (*entities.Field, error) {
	s.locks.Lock(fieldID)
	defer s.locks.Unlock(fieldID)

	f, err := s.load(fieldID)
	if err != nil {
		return nil, err
	}
	if err := assertTransition(f, entities.StageSeeded); err != nil {
		return nil, err
	}
	crop, err := s.crops.Lookup(cropName)
	if err != nil {
		return nil, err
	}

	// Machines stay leased for the modeled working time; the expiry sweep
	// returns them to the pool once the action is over.
	if _, err := s.pool.LeaseWithExpiry(f.FarmID, crop.Equipment, s.actionDur, holder(f)); err != nil {
		return nil, err
	}

	s.clk.Sleep(s.actionDur)

	now := s.clk.Now()
	readyAt := now.Add(time.Duration(crop.GrowthMinutes) * time.Minute)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.record(tx, f, "plant", f.Stage, entities.StageSeeded, 0); err != nil {
			return err
		}
		f.Stage = entities.StageSeeded
		f.CropType = crop.Name
		f.ExpectedYield = crop.YieldPerHa
		f.LastActionAt = &now
		f.ReadyAt = &readyAt
		return tx.Save(f).Error
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) Fertilize(fieldID uint) (*entities.Field, error) {
	s.locks.Lock(fieldID)
	defer s.locks.Unlock(fieldID)

	f, err := s.load(fieldID)
	if err != nil {
		return nil, err
	}
	if err := assertTransition(f, entities.StageFertilized); err != nil {
		return nil, err
	}

	s.clk.Sleep(s.actionDur)

	now := s.clk.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.record(tx, f, "fertilize", f.Stage, entities.StageFertilized, 0); err != nil {
			return err
		}
		f.Stage = entities.StageFertilized
		f.Fertilized = true
		f.LastActionAt = &now
		return tx.Save(f).Error
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Harvest moves the yield into the farm's main storage and resets the field,
// both inside one ledger transaction: a failed capacity check leaves field
// and storage untouched.
func (s *fieldSvc) Harvest(fieldID uint) (*service.HarvestResult, error) {
	s.locks.Lock(fieldID)
	defer s.locks.Unlock(fieldID)

	f, err := s.load(fieldID)
	if err != nil {
		return nil, err
	}
	if !harvestable(f, s.clk.Now()) {
		return nil, fault.New(fault.Transition,
			"cannot move field %d from %q to %q", f.FieldID, f.Stage, entities.StageFallow)
	}

	yield := f.ExpectedYield
	if f.Fertilized {
		yield = int64(float64(yield) * 1.5)
	}
	value := decimal.NewFromInt(1)
	if crop, err := s.crops.Lookup(f.CropType); err == nil {
		value = crop.BaseValue
	}

	var storage entities.Storage
	if err := s.db.Where("farm_id = ? AND type = ?", f.FarmID, entities.StorageTypeMain).First(&storage).Error; err != nil {
		return nil, fault.New(fault.NotFound, "no main storage for farm %d", f.FarmID)
	}

	s.clk.Sleep(s.actionDur)

	cropType := f.CropType
	fertilized := f.Fertilized
	now := s.clk.Now()
	err = s.ledger.Atomic(storage.StorageID, func(tx *gorm.DB, m ledger.Mutator) error {
		if err := m.Deposit(cropType, yield, value); err != nil {
			return err
		}
		if err := s.record(tx, f, "harvest", f.Stage, entities.StageFallow, yield); err != nil {
			return err
		}
		f.Stage = entities.StageFallow
		f.CropType = ""
		f.Fertilized = false
		f.ExpectedYield = 0
		f.ReadyAt = nil
		f.LastActionAt = &now
		return tx.Save(f).Error
	})
	if err != nil {
		return nil, err
	}

	return &service.HarvestResult{
		FieldID:    f.FieldID,
		FarmID:     f.FarmID,
		CropType:   cropType,
		Yield:      yield,
		Fertilized: fertilized,
		StorageID:  storage.StorageID,
	}, nil
}

// GrowthSweep is the single writer of the ready stage.
func (s *fieldSvc) GrowthSweep() (int, error) {
	var due []entities.Field
	now := s.clk.Now()
	err := s.db.Where("stage IN ? AND ready_at IS NOT NULL AND ready_at <= ?",
		[]string{entities.StageSeeded, entities.StageFertilized}, now).Find(&due).Error
	if err != nil {
		return 0, err
	}

	advanced := 0
	for i := range due {
		f := &due[i]
		s.locks.Lock(f.FieldID)
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var cur entities.Field
			if err := tx.First(&cur, f.FieldID).Error; err != nil {
				return err
			}
			if !growthDue(&cur, now) {
				return nil
			}
			cur.Stage = entities.StageReady
			if err := tx.Save(&cur).Error; err != nil {
				return err
			}
			advanced++
			return nil
		})
		s.locks.Unlock(f.FieldID)
		if err != nil {
			return advanced, err
		}
	}
	return advanced, nil
}

func (s *fieldSvc) load(fieldID uint) (*entities.Field, error) {
	var f entities.Field
	if err := s.db.First(&f, fieldID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.New(fault.NotFound, "field %d not found", fieldID)
		}
		return nil, err
	}
	return &f, nil
}

func (s *fieldSvc) record(tx *gorm.DB, f *entities.Field, action, prev, next string, yield int64) error {
	return tx.Create(&entities.FieldHistory{
		FieldID:       f.FieldID,
		Action:        action,
		CropType:      f.CropType,
		PreviousStage: prev,
		NewStage:      next,
		Yield:         yield,
		DurationSec:   int(s.actionDur / time.Second),
	}).Error
}

func assertTransition(f *entities.Field, to string) error {
	if !canTransition(f.Stage, to) {
		return fault.New(fault.Transition,
			"cannot move field %d from %q to %q", f.FieldID, f.Stage, to)
	}
	return nil
}

func growthDue(f *entities.Field, now time.Time) bool {
	if f.Stage != entities.StageSeeded && f.Stage != entities.StageFertilized {
		return false
	}
	return f.ReadyAt != nil && !now.Before(*f.ReadyAt)
}

// harvestable accepts a field the sweep already flipped to ready as well as
// one whose growth elapsed since the last sweep.
func harvestable(f *entities.Field, now time.Time) bool {
	return f.Stage == entities.StageReady || growthDue(f, now)
}

func holder(f *entities.Field) string {
	return "field-" + strconv.FormatUint(uint64(f.FieldID), 10)
}
