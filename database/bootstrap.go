package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("automigrate: %v", err)
	}
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Farm{},
		&entities.Field{},
		&entities.FieldHistory{},
		&entities.Crop{},
		&entities.Equipment{},
		&entities.EquipmentLease{},
		&entities.Storage{},
		&entities.StorageItem{},
		&entities.Transaction{},
		&entities.Factory{},
		&entities.Animal{},
		&entities.Greenhouse{},
		&entities.WaterTank{},
	)
}
