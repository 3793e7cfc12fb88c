package entities

import "time"

// FieldHistory is an audit row written once per field action.
type FieldHistory struct {
	HistoryID     uint   `gorm:"primaryKey" json:"history_id"`
	FieldID       uint   `gorm:"index" json:"field_id"`
	Action        string `json:"action"` // plow|plant|fertilize|harvest
	CropType      string `json:"crop_type"`
	PreviousStage string `json:"previous_stage"`
	NewStage      string `json:"new_stage"`
	Yield         int64  `json:"yield"`
	DurationSec   int    `json:"duration_sec"`
	CreatedAt     time.Time
}
