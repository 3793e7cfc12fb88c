package catalog

import (
	"strings"

	"gorm.io/gorm"

	"github.com/JoeDalton318/farming-simulator/entities"
)

// Persist mirrors the catalog into the crops table so external readers
// (reports, UI) see the same reference data the engine runs on.
func (c *Catalog) Persist(db *gorm.DB) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cr := range c.crops {
		needs := make([]string, len(cr.Equipment))
		for i, req := range cr.Equipment {
			needs[i] = reqString(req)
		}
		row := entities.Crop{
			Name:           cr.Name,
			YieldPerHa:     cr.YieldPerHa,
			GrowthMinutes:  cr.GrowthMinutes,
			BaseValue:      cr.BaseValue,
			EquipmentNeeds: strings.Join(needs, ","),
		}
		err := db.Where(entities.Crop{Name: cr.Name}).
			Assign(row).
			FirstOrCreate(&entities.Crop{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
