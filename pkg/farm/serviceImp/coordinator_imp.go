package serviceImp

import (
	"sync"

	factory "github.com/JoeDalton318/farming-simulator/pkg/factory/service"
	"github.com/JoeDalton318/farming-simulator/pkg/farm/service"
	field "github.com/JoeDalton318/farming-simulator/pkg/field/service"
	husbandry "github.com/JoeDalton318/farming-simulator/pkg/husbandry/service"
)

type coordinator struct {
	fields    field.FieldService
	factories factory.FactoryService
	animals   husbandry.HusbandryService

	mu       sync.RWMutex
	handlers []service.Handler
}

func NewCoordinator(fields field.FieldService, factories factory.FactoryService, animals husbandry.HusbandryService) service.Coordinator {
	return &coordinator{fields: fields, factories: factories, animals: animals}
}

func (c *coordinator) Register(h service.Handler) {
	c.mu.Lock()
	c.handlers = append(c.handlers, h)
	c.mu.Unlock()
}

func (c *coordinator) broadcast(ev service.Event) {
	c.mu.RLock()
	hs := make([]service.Handler, len(c.handlers))
	copy(hs, c.handlers)
	c.mu.RUnlock()
	for _, h := range hs {
		h(ev)
	}
}

// The services resolve the owning farm while the entity row is loaded, so
// every broadcast carries the farm id of the result it announces.

func (c *coordinator) Harvest(fieldID uint) (*field.HarvestResult, error) {
	res, err := c.fields.Harvest(fieldID)
	if err != nil {
		return nil, err
	}
	c.broadcast(service.Event{Type: service.EventHarvested, FarmID: res.FarmID, Payload: res})
	return res, nil
}

func (c *coordinator) RunFactory(factoryID uint, inputs []factory.InputItem) (*factory.Output, error) {
	out, err := c.factories.Process(factoryID, inputs)
	if err != nil {
		return nil, err
	}
	c.broadcast(service.Event{Type: service.EventFactoryRun, FarmID: out.FarmID, Payload: out})
	return out, nil
}

func (c *coordinator) CollectAnimal(animalID, tankID uint) (*husbandry.CollectResult, error) {
	res, err := c.animals.Collect(animalID, tankID)
	if err != nil {
		return nil, err
	}
	c.broadcast(service.Event{Type: service.EventAnimalCollected, FarmID: res.FarmID, Payload: res})
	return res, nil
}

func (c *coordinator) ProduceGreenhouse(greenhouseID, tankID uint) (*husbandry.ProduceResult, error) {
	res, err := c.animals.Produce(greenhouseID, tankID)
	if err != nil {
		return nil, err
	}
	c.broadcast(service.Event{Type: service.EventGreenhouseProduce, FarmID: res.FarmID, Payload: res})
	return res, nil
}
