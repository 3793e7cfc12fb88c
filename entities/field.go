package entities

import "time"

// Field cultivation stages. A field cycles fallow -> plowed -> seeded ->
// (fertilized ->) ready -> fallow; there is no terminal stage.
const (
	StageFallow     = "fallow"
	StagePlowed     = "plowed"
	StageSeeded     = "seeded"
	StageFertilized = "fertilized"
	StageReady      = "ready"
)

type Field struct {
	FieldID       uint       `gorm:"primaryKey" json:"field_id"`
	FarmID        uint       `gorm:"index" json:"farm_id"`
	Number        int        `json:"number"`
	SizeHa        float64    `json:"size_ha"`
	Stage         string     `json:"stage"` // fallow|plowed|seeded|fertilized|ready
	CropType      string     `json:"crop_type"`
	Fertilized    bool       `json:"fertilized"`
	ExpectedYield int64      `json:"expected_yield"`
	LastActionAt  *time.Time `json:"last_action_at"`
	ReadyAt       *time.Time `json:"ready_at"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
