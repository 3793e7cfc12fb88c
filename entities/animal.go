package entities

import "time"

const (
	SpeciesCow     = "cow"
	SpeciesSheep   = "sheep"
	SpeciesChicken = "chicken"
)

// Animal satiety is clamped to [-5,10]; once it reaches -5 the animal dies
// and Alive never flips back.
type Animal struct {
	AnimalID  uint       `gorm:"primaryKey" json:"animal_id"`
	FarmID    uint       `gorm:"index" json:"farm_id"`
	Species   string     `json:"species"` // cow|sheep|chicken
	Name      string     `json:"name"`
	Satiety   int        `json:"satiety"`
	WaterDraw int64      `json:"water_draw"`
	FeedDraw  int        `json:"feed_draw"`
	Alive     bool       `json:"alive"`
	LastFedAt *time.Time `json:"last_fed_at"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
