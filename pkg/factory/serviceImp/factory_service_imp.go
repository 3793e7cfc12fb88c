package serviceImp

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	"github.com/JoeDalton318/farming-simulator/pkg/factory/service"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	ledger "github.com/JoeDalton318/farming-simulator/pkg/ledger/service"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
)

type factorySvc struct {
	db     *gorm.DB
	clk    clock.Clock
	ledger ledger.LedgerService
	locks  *lockmap.LockMap // keyed by factory id
}

func New(db *gorm.DB, clk clock.Clock, led ledger.LedgerService) service.FactoryService {
	return &factorySvc{db: db, clk: clk, ledger: led, locks: lockmap.New()}
}

func (s *factorySvc) List(farmID uint) ([]entities.Factory, error) {
	var out []entities.Factory
	err := s.db.Where("farm_id = ?", farmID).Order("kind ASC").Find(&out).Error
	return out, err
}

func (s *factorySvc) SetOperational(factoryID uint, operational bool) error {
	fc, err := s.load(factoryID)
	if err != nil {
		return err
	}
	fc.Operational = operational
	if !operational {
		now := s.clk.Now()
		fc.LastMaintained = &now
	}
	return s.db.Save(fc).Error
}

func (s *factorySvc) Process(factoryID uint, inputs []service.InputItem) (*service.Output, error) {
	s.locks.Lock(factoryID)
	defer s.locks.Unlock(factoryID)

	fc, err := s.load(factoryID)
	if err != nil {
		return nil, err
	}
	if !fc.Operational {
		return nil, fault.New(fault.ResourceUnavailable, "factory %d is down for maintenance", factoryID)
	}
	recipe, err := service.RecipeFor(service.Kind(fc.Kind))
	if err != nil {
		return nil, err
	}

	snap, err := s.ledger.Content(fc.StorageID)
	if err != nil {
		return nil, err
	}
	if snap.Full {
		return nil, fault.New(fault.CapacityExceeded, "factory %d storage is full", factoryID)
	}

	consumed, baseQty, err := matchRecipe(recipe, inputs)
	if err != nil {
		return nil, err
	}

	// Processing time scales with input volume against the line's rate.
	var total int64
	for _, in := range consumed {
		total += in.Quantity
	}
	secs := (total + fc.ThroughputRate - 1) / fc.ThroughputRate
	s.clk.Sleep(time.Duration(secs) * time.Second)

	outQty := baseQty * recipe.Multiplier
	var out service.Output
	err = s.ledger.Atomic(fc.StorageID, func(tx *gorm.DB, m ledger.Mutator) error {
		valueSum := decimal.Zero
		for _, in := range consumed {
			item, err := m.Item(in.ItemType)
			if err != nil {
				return err
			}
			valueSum = valueSum.Add(item.ValuePerUnit)
			if err := m.Withdraw(in.ItemType, in.Quantity); err != nil {
				return err
			}
		}
		outValue := valueSum.Mul(decimal.NewFromInt(recipe.Multiplier))
		if err := m.Deposit(recipe.Output, outQty, outValue); err != nil {
			return err
		}
		out = service.Output{
			FactoryID:      fc.FactoryID,
			FarmID:         fc.FarmID,
			FactoryKind:    fc.Kind,
			ItemType:       recipe.Output,
			Quantity:       outQty,
			ValuePerUnit:   outValue,
			ProcessingSecs: secs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// matchRecipe validates the supplied inputs against the recipe and returns
// the exact consumption list plus the base batch quantity.
func matchRecipe(r service.Recipe, inputs []service.InputItem) ([]service.InputItem, int64, error) {
	byType := map[string]int64{}
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, 0, fault.New(fault.IngredientMismatch,
				"input %s has non-positive quantity %d", in.ItemType, in.Quantity)
		}
		byType[in.ItemType] += in.Quantity
	}

	if len(r.AnyOf) > 0 {
		for _, kind := range r.AnyOf {
			if qty, ok := byType[kind]; ok {
				return []service.InputItem{{ItemType: kind, Quantity: qty}}, qty, nil
			}
		}
		return nil, 0, fault.New(fault.IngredientMismatch,
			"recipe for %s needs one of %v", r.Output, r.AnyOf)
	}

	batch := int64(-1)
	for _, kind := range r.AllOf {
		qty, ok := byType[kind]
		if !ok {
			return nil, 0, fault.New(fault.IngredientMismatch,
				"recipe for %s needs %v, missing %s", r.Output, r.AllOf, kind)
		}
		if batch == -1 || qty < batch {
			batch = qty
		}
	}
	if r.EqualQty {
		for _, kind := range r.AllOf {
			if byType[kind] != batch {
				return nil, 0, fault.New(fault.IngredientMismatch,
					"recipe for %s needs equal quantities of %v", r.Output, r.AllOf)
			}
		}
	}

	// Multi-ingredient batches consume the batch size of every ingredient.
	consumed := make([]service.InputItem, 0, len(r.AllOf))
	for _, kind := range r.AllOf {
		consumed = append(consumed, service.InputItem{ItemType: kind, Quantity: batch})
	}
	return consumed, batch, nil
}

func (s *factorySvc) load(factoryID uint) (*entities.Factory, error) {
	var fc entities.Factory
	if err := s.db.First(&fc, factoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.New(fault.NotFound, "factory %d not found", factoryID)
		}
		return nil, err
	}
	return &fc, nil
}
