package service

import (
	"time"

	"github.com/JoeDalton318/farming-simulator/entities"
)

type HarvestResult struct {
	FieldID    uint   `json:"field_id"`
	FarmID     uint   `json:"farm_id"`
	CropType   string `json:"crop_type"`
	Yield      int64  `json:"yield"`
	Fertilized bool   `json:"fertilized"`
	StorageID  uint   `json:"storage_id"`
}

// Status reports the field with its effective stage: a seeded field past its
// ready time shows as ready without the row being touched. The growth sweep
// is the only writer of the ready stage.
type Status struct {
	entities.Field
	EffectiveStage string     `json:"effective_stage"`
	GrowthDueAt    *time.Time `json:"growth_due_at"`
}

// FieldService drives the cultivation cycle
// fallow -> plowed -> seeded -> (fertilized) -> ready -> fallow.
// Each action suspends the caller for the modeled work duration before its
// result becomes observable.
type FieldService interface {
	CreateField(farmID uint) (*entities.Field, error)
	Status(fieldID uint) (*Status, error)
	History(fieldID uint) ([]entities.FieldHistory, error)

	Plow(fieldID uint) (*entities.Field, error)
	Plant(fieldID uint, cropName string) (*entities.Field, error)
	Fertilize(fieldID uint) (*entities.Field, error)
	Harvest(fieldID uint) (*HarvestResult, error)

	// GrowthSweep flips every due seeded/fertilized field to ready and
	// returns how many fields it advanced.
	GrowthSweep() (int, error)
}
