package service

import (
	"github.com/shopspring/decimal"

	"github.com/JoeDalton318/farming-simulator/entities"
	factory "github.com/JoeDalton318/farming-simulator/pkg/factory/service"
	field "github.com/JoeDalton318/farming-simulator/pkg/field/service"
	husbandry "github.com/JoeDalton318/farming-simulator/pkg/husbandry/service"
)

const (
	EventHarvested         = "field.harvested"
	EventFactoryRun        = "factory.run"
	EventAnimalCollected   = "animal.collected"
	EventGreenhouseProduce = "greenhouse.produced"
)

// Event is a farm-level notification emitted after an orchestrated
// operation commits.
type Event struct {
	Type    string      `json:"type"`
	FarmID  uint        `json:"farm_id"`
	Payload interface{} `json:"payload"`
}

type Handler func(Event)

type StorageSummary struct {
	StorageID     uint   `json:"storage_id"`
	Type          string `json:"type"`
	Capacity      int64  `json:"capacity"`
	CurrentVolume int64  `json:"current_volume"`
}

type FarmStatus struct {
	FarmID       uint             `json:"farm_id"`
	Name         string           `json:"name"`
	Cash         decimal.Decimal  `json:"cash"`
	Fields       int64            `json:"fields"`
	AnimalsAlive int64            `json:"animals_alive"`
	AnimalsTotal int64            `json:"animals_total"`
	Equipment    int64            `json:"equipment"`
	Storages     []StorageSummary `json:"storages"`
}

// FarmService owns the farm record and its cash balance.
type FarmService interface {
	CreateFarm(name string, cash decimal.Decimal) (*entities.Farm, error)
	Status(farmID uint) (*FarmStatus, error)
	Deduct(farmID uint, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(farmID uint, amount decimal.Decimal) (decimal.Decimal, error)
}

// Coordinator fronts the production services and broadcasts a farm event
// after each orchestrated operation. Handlers are an explicit list held by
// the coordinator; there is no process-global bus.
type Coordinator interface {
	Register(h Handler)

	Harvest(fieldID uint) (*field.HarvestResult, error)
	RunFactory(factoryID uint, inputs []factory.InputItem) (*factory.Output, error)
	CollectAnimal(animalID, tankID uint) (*husbandry.CollectResult, error)
	ProduceGreenhouse(greenhouseID, tankID uint) (*husbandry.ProduceResult, error)
}
