package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/JoeDalton318/farming-simulator/config"
	"github.com/JoeDalton318/farming-simulator/database"
	"github.com/JoeDalton318/farming-simulator/router"

	"github.com/JoeDalton318/farming-simulator/pkg/catalog"
	"github.com/JoeDalton318/farming-simulator/pkg/clock"
	"github.com/JoeDalton318/farming-simulator/pkg/lockmap"

	equipmentCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/equipment/controllerImp"
	equipmentSvcImp "github.com/JoeDalton318/farming-simulator/pkg/equipment/serviceImp"

	ledgerSvc "github.com/JoeDalton318/farming-simulator/pkg/ledger/service"
	ledgerCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/ledger/controllerImp"
	ledgerSvcImp "github.com/JoeDalton318/farming-simulator/pkg/ledger/serviceImp"

	fieldCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/field/controllerImp"
	fieldSvcImp "github.com/JoeDalton318/farming-simulator/pkg/field/serviceImp"

	factoryCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/factory/controllerImp"
	factorySvcImp "github.com/JoeDalton318/farming-simulator/pkg/factory/serviceImp"

	waterCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/water/controllerImp"
	waterSvcImp "github.com/JoeDalton318/farming-simulator/pkg/water/serviceImp"

	husbandryCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/husbandry/controllerImp"
	husbandrySvcImp "github.com/JoeDalton318/farming-simulator/pkg/husbandry/serviceImp"

	farmSvc "github.com/JoeDalton318/farming-simulator/pkg/farm/service"
	farmCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/farm/controllerImp"
	farmSvcImp "github.com/JoeDalton318/farming-simulator/pkg/farm/serviceImp"

	healthCtrlImp "github.com/JoeDalton318/farming-simulator/pkg/health/controllerImp"
)

func main() {
	cfg := config.Load()

	db := database.OpenSQLite(cfg.DBPath)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}
	if _, err := database.Seed(db, cfg.StorageCapacity); err != nil {
		log.Fatalf("seed: %v", err)
	}

	crops := catalog.NewDefault()
	if cfg.CropWorkbook != "" {
		if err := crops.LoadWorkbook(cfg.CropWorkbook); err != nil {
			log.Printf("crop workbook warn: %v", err)
		}
	}
	if err := crops.Persist(db); err != nil {
		log.Printf("crop persist warn: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	clk := clock.Real{}
	tankLocks := lockmap.New()

	ledger := ledgerSvcImp.New(db)
	pool := equipmentSvcImp.New(db, clk)
	fields := fieldSvcImp.New(db, clk, crops, pool, ledger, cfg.ActionDuration)
	factories := factorySvcImp.New(db, clk, ledger)
	water := waterSvcImp.New(db, clk, tankLocks)
	animals := husbandrySvcImp.New(db, clk, ledger, tankLocks)
	farms := farmSvcImp.New(db)
	coord := farmSvcImp.NewCoordinator(fields, factories, animals)

	ledger.Subscribe(func(ev ledgerSvc.Event) {
		logger.WithFields(logrus.Fields{
			"storage_id": ev.StorageID,
			"item_type":  ev.ItemType,
			"delta":      ev.Delta,
			"quantity":   ev.Quantity,
			"volume":     ev.Volume,
		}).Info(ev.Type)
	})
	coord.Register(func(ev farmSvc.Event) {
		logger.WithFields(logrus.Fields{
			"farm_id": ev.FarmID,
			"payload": ev.Payload,
		}).Info(ev.Type)
	})

	// Background sweeps: growth, lease expiry, tank refill.
	go func() {
		for range time.Tick(cfg.SweepInterval) {
			if n, err := fields.GrowthSweep(); err != nil {
				logger.WithError(err).Warn("growth sweep")
			} else if n > 0 {
				logger.WithField("fields", n).Info("growth sweep")
			}
			if n, err := pool.ExpireLeases(); err != nil {
				logger.WithError(err).Warn("lease sweep")
			} else if n > 0 {
				logger.WithField("units", n).Info("lease sweep")
			}
			if n, err := water.AutoRefill(); err != nil {
				logger.WithError(err).Warn("tank sweep")
			} else if n > 0 {
				logger.WithField("tanks", n).Info("tank sweep")
			}
		}
	}()

	e := echo.New()
	e.Use(echoMiddleware.Recover())

	r := router.New(
		e,
		farmCtrlImp.New(farms),
		fieldCtrlImp.New(fields, coord),
		equipmentCtrlImp.New(pool),
		ledgerCtrlImp.New(ledger),
		factoryCtrlImp.New(factories, coord),
		waterCtrlImp.New(water),
		husbandryCtrlImp.New(animals, coord),
		healthCtrlImp.NewHealthCtrl(db),
	)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
