package service

import "github.com/JoeDalton318/farming-simulator/entities"

type HealthReport struct {
	AnimalID uint   `json:"animal_id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Alive    bool   `json:"alive"`
	Satiety  int    `json:"satiety"`
	State    string `json:"state"` // healthy|hungry|deficit|dead
}

type CollectResult struct {
	AnimalID      uint             `json:"animal_id"`
	FarmID        uint             `json:"farm_id"`
	Products      map[string]int64 `json:"products"`
	WaterConsumed int64            `json:"water_consumed"`
	StorageID     uint             `json:"storage_id"`
}

type FeedOutcome struct {
	AnimalID uint   `json:"animal_id"`
	Satiety  int    `json:"satiety,omitempty"`
	Alive    bool   `json:"alive"`
	Err      string `json:"error,omitempty"`
}

type ProduceResult struct {
	GreenhouseID  uint   `json:"greenhouse_id"`
	FarmID        uint   `json:"farm_id"`
	ItemType      string `json:"item_type"`
	Quantity      int64  `json:"quantity"`
	WaterConsumed int64  `json:"water_consumed"`
}

// HusbandryService covers the cyclical producers: livestock and the
// greenhouse. Both draw water before producing and deposit into the farm
// ledger atomically.
type HusbandryService interface {
	BuyAnimal(farmID uint, species, name string) (*entities.Animal, error)
	Feed(animalID uint, amount int) (*entities.Animal, error)
	FeedAll(farmID uint, amount int) ([]FeedOutcome, error)
	Collect(animalID, tankID uint) (*CollectResult, error)
	Health(animalID uint) (*HealthReport, error)

	ActivateGreenhouse(greenhouseID, tankID uint) (*entities.Greenhouse, error)
	DeactivateGreenhouse(greenhouseID uint) (*entities.Greenhouse, error)
	Produce(greenhouseID, tankID uint) (*ProduceResult, error)
}
