package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port            string
	DBPath          string
	StorageCapacity int64
	ActionDuration  time.Duration // modeled duration of plow/plant/fertilize/harvest
	SweepInterval   time.Duration // cadence of growth/lease/tank sweeps
	CropWorkbook    string        // optional xlsx overriding the built-in crop table
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int64) int64 {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
		return def
	}

	cfg := AppConfig{
		Port:            get("PORT", "8080"),
		DBPath:          get("DB_PATH", "farm.db"),
		StorageCapacity: getInt("STORAGE_CAPACITY", 100000),
		ActionDuration:  time.Duration(getInt("ACTION_SECONDS", 30)) * time.Second,
		SweepInterval:   time.Duration(getInt("SWEEP_SECONDS", 15)) * time.Second,
		CropWorkbook:    get("CROP_XLSX", ""),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
