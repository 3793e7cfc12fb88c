package router

import (
	"github.com/labstack/echo/v4"

	equipmentCtrl "github.com/JoeDalton318/farming-simulator/pkg/equipment/controllerImp"
	factoryCtrl "github.com/JoeDalton318/farming-simulator/pkg/factory/controllerImp"
	farmCtrl "github.com/JoeDalton318/farming-simulator/pkg/farm/controllerImp"
	fieldCtrl "github.com/JoeDalton318/farming-simulator/pkg/field/controllerImp"
	healthCtrl "github.com/JoeDalton318/farming-simulator/pkg/health/controllerImp"
	husbandryCtrl "github.com/JoeDalton318/farming-simulator/pkg/husbandry/controllerImp"
	ledgerCtrl "github.com/JoeDalton318/farming-simulator/pkg/ledger/controllerImp"
	waterCtrl "github.com/JoeDalton318/farming-simulator/pkg/water/controllerImp"
)

func New(
	e *echo.Echo,
	farms *farmCtrl.FarmCtrl,
	fields *fieldCtrl.FieldCtrl,
	equipment *equipmentCtrl.EquipmentCtrl,
	storages *ledgerCtrl.LedgerCtrl,
	factories *factoryCtrl.FactoryCtrl,
	water *waterCtrl.WaterCtrl,
	animals *husbandryCtrl.HusbandryCtrl,
	health *healthCtrl.HealthCtrl,
) *echo.Echo {
	e.GET("/health", health.Health)

	e.POST("/farms", farms.Create)
	e.GET("/farms/:id", farms.Status)
	e.POST("/farms/:id/deduct", farms.Deduct)

	e.POST("/fields", fields.Create)
	e.GET("/fields/:id", fields.Status)
	e.GET("/fields/:id/history", fields.History)
	e.POST("/fields/:id/plow", fields.Plow)
	e.POST("/fields/:id/plant", fields.Plant)
	e.POST("/fields/:id/fertilize", fields.Fertilize)
	e.POST("/fields/:id/harvest", fields.Harvest)

	e.GET("/equipment", equipment.Fleet)
	e.GET("/equipment/leases", equipment.Leases)
	e.POST("/equipment/lease", equipment.Lease)
	e.POST("/equipment/:id/release", equipment.Release)
	e.POST("/equipment/:id/maintenance", equipment.MarkMaintenance)
	e.DELETE("/equipment/:id/maintenance", equipment.ClearMaintenance)

	e.GET("/storages/:id", storages.Content)
	e.POST("/storages/:id/items", storages.Add)
	e.DELETE("/storages/:id/items", storages.Remove)
	e.POST("/storages/:id/sell", storages.Sell)

	e.GET("/factories", factories.List)
	e.POST("/factories/:id/process", factories.Process)
	e.PATCH("/factories/:id/operational", factories.SetOperational)

	e.GET("/tanks/:id", water.Level)
	e.POST("/tanks/:id/consume", water.Consume)
	e.POST("/tanks/:id/refill", water.Refill)

	e.POST("/animals", animals.Buy)
	e.GET("/animals/:id", animals.Health)
	e.POST("/animals/:id/feed", animals.Feed)
	e.POST("/animals/feed", animals.FeedAll)
	e.POST("/animals/:id/collect", animals.Collect)

	e.POST("/greenhouses/:id/activate", animals.ActivateGreenhouse)
	e.POST("/greenhouses/:id/deactivate", animals.DeactivateGreenhouse)
	e.POST("/greenhouses/:id/produce", animals.Produce)

	return e
}
