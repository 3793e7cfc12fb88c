package serviceImp

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	"github.com/JoeDalton318/farming-simulator/pkg/fault"
	"github.com/JoeDalton318/farming-simulator/pkg/husbandry/service"
	ledger "github.com/JoeDalton318/farming-simulator/pkg/ledger/service"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"
	waterImp "github.com/JoeDalton318/farming-simulator/pkg/water/serviceImp"
)

const greenhouseBatch = 1500 // strawberries per production run

// speciesSpec fixes purchase cost, consumption and the product bundle per
// species.
var speciesSpec = map[string]struct {
	cost      int64
	waterDraw int64
	feedDraw  int
	products  map[string]int64
}{
	entities.SpeciesCow:     {cost: 10, waterDraw: 3, feedDraw: 3, products: map[string]int64{"milk": 20, "manure": 5}},
	entities.SpeciesSheep:   {cost: 5, waterDraw: 2, feedDraw: 2, products: map[string]int64{"wool": 5, "manure": 5}},
	entities.SpeciesChicken: {cost: 1, waterDraw: 1, feedDraw: 1, products: map[string]int64{"eggs": 1}},
}

type husbandrySvc struct {
	db          *gorm.DB
	clk         clock.Clock
	ledger      ledger.LedgerService
	animalLocks *lockmap.LockMap
	tankLocks   *lockmap.LockMap // shared with the water service
}

func New(db *gorm.DB, clk clock.Clock, led ledger.LedgerService, tankLocks *lockmap.LockMap) service.HusbandryService {
	return &husbandrySvc{db: db, clk: clk, ledger: led, animalLocks: lockmap.New(), tankLocks: tankLocks}
}

func (s *husbandrySvc) BuyAnimal(farmID uint, species, name string) (*entities.Animal, error) {
	spec, ok := speciesSpec[species]
	if !ok {
		return nil, fault.New(fault.NotFound, "unknown species %q", species)
	}

	var animal *entities.Animal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var farm entities.Farm
		if err := tx.First(&farm, farmID).Error; err != nil {
			return fault.New(fault.NotFound, "farm %d not found", farmID)
		}
		cost := decimal.NewFromInt(spec.cost)
		if farm.Cash.LessThan(cost) {
			return fault.New(fault.InsufficientFunds,
				"a %s costs %s, farm holds %s", species, cost, farm.Cash)
		}
		farm.Cash = farm.Cash.Sub(cost)
		if err := tx.Save(&farm).Error; err != nil {
			return err
		}

		rec := entities.Transaction{
			FarmID: farmID, ItemType: species, Quantity: 1, TotalValue: cost, Action: "buy",
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		animal = &entities.Animal{
			FarmID:    farmID,
			Species:   species,
			Name:      name,
			Satiety:   10,
			WaterDraw: spec.waterDraw,
			FeedDraw:  spec.feedDraw,
			Alive:     true,
		}
		return tx.Create(animal).Error
	})
	if err != nil {
		return nil, err
	}
	return animal, nil
}

func (s *husbandrySvc) Feed(animalID uint, amount int) (*entities.Animal, error) {
	s.animalLocks.Lock(animalID)
	defer s.animalLocks.Unlock(animalID)

	var out entities.Animal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		a, err := loadAnimal(tx, animalID)
		if err != nil {
			return err
		}
		if !a.Alive {
			return fault.New(fault.ResourceUnavailable, "animal %d is dead", animalID)
		}
		applyFeed(a, amount, s.clk)
		out = *a
		return tx.Save(a).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *husbandrySvc) FeedAll(farmID uint, amount int) ([]service.FeedOutcome, error) {
	var animals []entities.Animal
	if err := s.db.Where("farm_id = ? AND alive = ?", farmID, true).Find(&animals).Error; err != nil {
		return nil, err
	}
	outcomes := make([]service.FeedOutcome, 0, len(animals))
	for _, a := range animals {
		fed, err := s.Feed(a.AnimalID, amount)
		if err != nil {
			outcomes = append(outcomes, service.FeedOutcome{AnimalID: a.AnimalID, Err: err.Error()})
			continue
		}
		outcomes = append(outcomes, service.FeedOutcome{AnimalID: a.AnimalID, Satiety: fed.Satiety, Alive: fed.Alive})
	}
	return outcomes, nil
}

// Collect draws the species' water, burns feed stock and banks the product
// bundle, all in one transaction on the farm ledger.
func (s *husbandrySvc) Collect(animalID, tankID uint) (*service.CollectResult, error) {
	s.animalLocks.Lock(animalID)
	defer s.animalLocks.Unlock(animalID)

	a, err := loadAnimal(s.db, animalID)
	if err != nil {
		return nil, err
	}
	if !a.Alive {
		return nil, fault.New(fault.ResourceUnavailable, "animal %d is dead", animalID)
	}
	if a.Satiety < 0 {
		return nil, fault.New(fault.ResourceUnavailable,
			"animal %d is too hungry to produce (satiety %d)", animalID, a.Satiety)
	}
	spec := speciesSpec[a.Species]

	var storage entities.Storage
	if err := s.db.Where("farm_id = ? AND type = ?", a.FarmID, entities.StorageTypeMain).First(&storage).Error; err != nil {
		return nil, fault.New(fault.NotFound, "no main storage for farm %d", a.FarmID)
	}

	s.tankLocks.Lock(tankID)
	defer s.tankLocks.Unlock(tankID)

	err = s.ledger.Atomic(storage.StorageID, func(tx *gorm.DB, m ledger.Mutator) error {
		if _, err := waterImp.Draw(tx, tankID, spec.waterDraw); err != nil {
			return err
		}

		cur, err := loadAnimal(tx, animalID)
		if err != nil {
			return err
		}
		applyFeed(cur, -cur.FeedDraw, s.clk)
		if err := tx.Save(cur).Error; err != nil {
			return err
		}

		one := decimal.NewFromInt(1)
		for product, qty := range spec.products {
			if err := m.Deposit(product, qty, one); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &service.CollectResult{
		AnimalID:      animalID,
		FarmID:        a.FarmID,
		Products:      spec.products,
		WaterConsumed: spec.waterDraw,
		StorageID:     storage.StorageID,
	}, nil
}

func (s *husbandrySvc) Health(animalID uint) (*service.HealthReport, error) {
	a, err := loadAnimal(s.db, animalID)
	if err != nil {
		return nil, err
	}
	state := "healthy"
	switch {
	case !a.Alive:
		state = "dead"
	case a.Satiety < 0:
		state = "deficit"
	case a.Satiety < 5:
		state = "hungry"
	}
	return &service.HealthReport{
		AnimalID: a.AnimalID,
		Name:     a.Name,
		Species:  a.Species,
		Alive:    a.Alive,
		Satiety:  a.Satiety,
		State:    state,
	}, nil
}

func (s *husbandrySvc) ActivateGreenhouse(greenhouseID, tankID uint) (*entities.Greenhouse, error) {
	var gh entities.Greenhouse
	if err := s.db.First(&gh, greenhouseID).Error; err != nil {
		return nil, greenhouseErr(greenhouseID, err)
	}
	tank := entities.WaterTank{}
	if err := s.db.First(&tank, tankID).Error; err != nil {
		return nil, fault.New(fault.NotFound, "water tank %d not found", tankID)
	}
	if tank.CurrentLevel < gh.WaterDraw {
		return nil, fault.New(fault.ResourceUnavailable,
			"tank %d holds %dL, greenhouse needs %dL to start", tankID, tank.CurrentLevel, gh.WaterDraw)
	}
	gh.Active = true
	if err := s.db.Save(&gh).Error; err != nil {
		return nil, err
	}
	return &gh, nil
}

func (s *husbandrySvc) DeactivateGreenhouse(greenhouseID uint) (*entities.Greenhouse, error) {
	var gh entities.Greenhouse
	if err := s.db.First(&gh, greenhouseID).Error; err != nil {
		return nil, greenhouseErr(greenhouseID, err)
	}
	gh.Active = false
	if err := s.db.Save(&gh).Error; err != nil {
		return nil, err
	}
	return &gh, nil
}

func (s *husbandrySvc) Produce(greenhouseID, tankID uint) (*service.ProduceResult, error) {
	var gh entities.Greenhouse
	if err := s.db.First(&gh, greenhouseID).Error; err != nil {
		return nil, greenhouseErr(greenhouseID, err)
	}
	if !gh.Active {
		return nil, fault.New(fault.ResourceUnavailable, "greenhouse %d is not active", greenhouseID)
	}

	var storage entities.Storage
	if err := s.db.Where("farm_id = ? AND type = ?", gh.FarmID, entities.StorageTypeMain).First(&storage).Error; err != nil {
		return nil, fault.New(fault.NotFound, "no main storage for farm %d", gh.FarmID)
	}

	s.tankLocks.Lock(tankID)
	defer s.tankLocks.Unlock(tankID)

	err := s.ledger.Atomic(storage.StorageID, func(tx *gorm.DB, m ledger.Mutator) error {
		if _, err := waterImp.Draw(tx, tankID, gh.WaterDraw); err != nil {
			return err
		}
		return m.Deposit("strawberry", greenhouseBatch, decimal.NewFromInt(1))
	})
	if err != nil {
		return nil, err
	}

	return &service.ProduceResult{
		GreenhouseID:  greenhouseID,
		FarmID:        gh.FarmID,
		ItemType:      "strawberry",
		Quantity:      greenhouseBatch,
		WaterConsumed: gh.WaterDraw,
	}, nil
}

// applyFeed clamps satiety to [-5,10]; hitting the floor kills the animal
// for good.
func applyFeed(a *entities.Animal, amount int, clk clock.Clock) {
	sat := a.Satiety + amount
	if sat > 10 {
		sat = 10
	}
	if sat < -5 {
		sat = -5
	}
	a.Satiety = sat
	now := clk.Now()
	a.LastFedAt = &now
	if sat <= -5 {
		a.Alive = false
	}
}

func loadAnimal(db *gorm.DB, animalID uint) (*entities.Animal, error) {
	var a entities.Animal
	if err := db.First(&a, animalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.New(fault.NotFound, "animal %d not found", animalID)
		}
		return nil, err
	}
	return &a, nil
}

func greenhouseErr(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fault.New(fault.NotFound, "greenhouse %d not found", id)
	}
	return err
}
