package serviceImp

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/farm/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
)

type farmSvc struct {
	db    *gorm.DB
	locks *lockmap.LockMap
}

func New(db *gorm.DB) service.FarmService {
	return &farmSvc{db: db, locks: lockmap.New()}
}

func (s *farmSvc) CreateFarm(name string, cash decimal.Decimal) (*entities.Farm, error) {
	farm := entities.Farm{Name: name, Cash: cash}
	if err := s.db.Create(&farm).Error; err != nil {
		return nil, err
	}
	return &farm, nil
}

func (s *farmSvc) Status(farmID uint) (*service.FarmStatus, error) {
	var farm entities.Farm
	if err := s.db.First(&farm, farmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.New(fault.NotFound, "farm %d not found", farmID)
		}
		return nil, err
	}

	st := service.FarmStatus{FarmID: farm.FarmID, Name: farm.Name, Cash: farm.Cash}
	s.db.Model(&entities.Field{}).Where("farm_id = ?", farmID).Count(&st.Fields)
	s.db.Model(&entities.Animal{}).Where("farm_id = ?", farmID).Count(&st.AnimalsTotal)
	s.db.Model(&entities.Animal{}).Where("farm_id = ? AND alive = ?", farmID, true).Count(&st.AnimalsAlive)
	s.db.Model(&entities.Equipment{}).Where("farm_id = ?", farmID).Count(&st.Equipment)

	var storages []entities.Storage
	if err := s.db.Where("farm_id = ?", farmID).Order("storage_id").Find(&storages).Error; err != nil {
		return nil, err
	}
	for _, sto := range storages {
		st.Storages = append(st.Storages, service.StorageSummary{
			StorageID:     sto.StorageID,
			Type:          sto.Type,
			Capacity:      sto.Capacity,
			CurrentVolume: sto.CurrentVolume,
		})
	}
	return &st, nil
}

func (s *farmSvc) Deduct(farmID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.adjust(farmID, amount.Neg())
}

func (s *farmSvc) Credit(farmID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.adjust(farmID, amount)
}

func (s *farmSvc) adjust(farmID uint, delta decimal.Decimal) (decimal.Decimal, error) {
	s.locks.Lock(farmID)
	defer s.locks.Unlock(farmID)

	var balance decimal.Decimal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var farm entities.Farm
		if err := tx.First(&farm, farmID).Error; err != nil {
			return fault.New(fault.NotFound, "farm %d not found", farmID)
		}
		next := farm.Cash.Add(delta)
		if next.IsNegative() {
			return fault.New(fault.InsufficientFunds,
				"farm %d holds %s, cannot cover %s", farmID, farm.Cash, delta.Abs())
		}
		farm.Cash = next
		balance = next
		return tx.Save(&farm).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
