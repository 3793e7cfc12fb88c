package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var started = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

// Health pings the database and reports process uptime. Anything short of a
// reachable database answers 503.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
	defer cancel()

	dbErr := ""
	if h.db == nil {
		dbErr = "database not configured"
	} else if sqlDB, err := h.db.DB(); err != nil {
		dbErr = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbErr = err.Error()
	}

	status := http.StatusOK
	if dbErr != "" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"ok":         dbErr == "",
		"database":   map[string]any{"ok": dbErr == "", "error": dbErr},
		"uptime_sec": int(time.Since(started).Seconds()),
		"time":       time.Now().UTC().Format(time.RFC3339),
	})
}
