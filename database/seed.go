package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
)

// fleetSpec mirrors the stock machine park every new farm starts with.
var fleetSpec = []struct {
	kind    string
	subtype string
	count   int
}{
	{"tractor", "standard", 5},
	{"trailer", "standard", 3},
	{"harvester", "standard", 2},
	{"plow", "standard", 2},
	{"fertilizer_spreader", "standard", 2},
	{"planter", "standard", 2},
	{"planter", "grape", 1},
	{"harvester", "grape", 1},
	{"planter", "tree", 1},
	{"harvester", "olive", 1},
	{"planter", "potato", 1},
	{"harvester", "potato", 1},
	{"harvester", "beet", 1},
	{"harvester", "cotton", 1},
	{"trailer", "semi", 1},
	{"planter", "cane", 1},
	{"harvester", "cane", 1},
	{"harvester", "tree", 1},
	{"planter", "vegetable", 1},
	{"harvester", "vegetable", 1},
	{"harvester", "spinach", 1},
	{"harvester", "pea", 1},
	{"harvester", "bean", 1},
	{"milking_machine", "standard", 1},
	{"shearing_machine", "standard", 1},
}

var factorySpec = []struct {
	kind      string
	rate      int64
	waterDraw int64
}{
	{"oil_mill", 100, 0},
	{"sawmill", 100, 0},
	{"sugar_refinery", 80, 0},
	{"spinnery", 60, 0},
	{"winery", 75, 0},
	{"bakery", 50, 0},
	{"chip_factory", 40, 0},
	{"toy_factory", 30, 0},
	{"wagon_factory", 20, 0},
	{"textile_workshop", 60, 0},
	{"manure_factory", 50, 5},
	{"dairy", 30, 3},
	{"chocolate_factory", 20, 10},
}

// Seed creates the default farm with its fields, storages, fleet, factories,
// tank, greenhouse and starter animals. It is a no-op when a farm exists.
func Seed(db *gorm.DB, mainCapacity int64) (*entities.Farm, error) {
	var existing entities.Farm
	if err := db.First(&existing).Error; err == nil {
		return &existing, nil
	}

	farm := &entities.Farm{Name: "Home Farm", Cash: decimal.NewFromInt(10000)}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(farm).Error; err != nil {
			return err
		}

		for i := 1; i <= 6; i++ {
			f := &entities.Field{FarmID: farm.FarmID, Number: i, SizeHa: 1.0, Stage: entities.StageFallow}
			if err := tx.Create(f).Error; err != nil {
				return err
			}
		}

		main := &entities.Storage{FarmID: farm.FarmID, Type: entities.StorageTypeMain, Capacity: mainCapacity}
		if err := tx.Create(main).Error; err != nil {
			return err
		}
		processed := &entities.Storage{FarmID: farm.FarmID, Type: entities.StorageTypeProcessed, Capacity: 50000}
		if err := tx.Create(processed).Error; err != nil {
			return err
		}

		for _, spec := range fleetSpec {
			for i := 0; i < spec.count; i++ {
				eq := &entities.Equipment{FarmID: farm.FarmID, Kind: spec.kind, Subtype: spec.subtype, Available: true}
				if err := tx.Create(eq).Error; err != nil {
					return err
				}
			}
		}

		for _, spec := range factorySpec {
			st := &entities.Storage{FarmID: farm.FarmID, Type: entities.StorageTypeFactory, Capacity: 50000}
			if err := tx.Create(st).Error; err != nil {
				return err
			}
			fc := &entities.Factory{
				FarmID:         farm.FarmID,
				Kind:           spec.kind,
				Operational:    true,
				ThroughputRate: spec.rate,
				WaterDraw:      spec.waterDraw,
				StorageID:      st.StorageID,
			}
			if err := tx.Create(fc).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		tank := &entities.WaterTank{FarmID: farm.FarmID, Capacity: 20000, CurrentLevel: 20000, LastRefillAt: &now}
		if err := tx.Create(tank).Error; err != nil {
			return err
		}
		gh := &entities.Greenhouse{FarmID: farm.FarmID, Active: false, WaterDraw: 15}
		if err := tx.Create(gh).Error; err != nil {
			return err
		}

		starters := []struct {
			species   string
			waterDraw int64
			feedDraw  int
			count     int
		}{
			{entities.SpeciesCow, 3, 3, 2},
			{entities.SpeciesSheep, 2, 2, 2},
			{entities.SpeciesChicken, 1, 1, 4},
		}
		for _, s := range starters {
			for i := 0; i < s.count; i++ {
				a := &entities.Animal{
					FarmID:    farm.FarmID,
					Species:   s.species,
					Name:      fmt.Sprintf("%s-%d", s.species, i+1),
					Satiety:   10,
					WaterDraw: s.waterDraw,
					FeedDraw:  s.feedDraw,
					Alive:     true,
				}
				if err := tx.Create(a).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return farm, nil
}
