package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a target the staff tracks, either global or for a single client
type Goal struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Title     string     `gorm:"not null" json:"title"`
	Frequency string     `gorm:"default:weekly;not null" json:"frequency"`
	Target    float64    `gorm:"not null" json:"target"`
	IsGlobal  bool       `gorm:"default:true" json:"is_global"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Goal
func (Goal) TableName() string {
	return "goals"
}

// Goal frequency constants
const (
	GoalFrequencyDaily   = "daily"
	GoalFrequencyWeekly  = "weekly"
	GoalFrequencyMonthly = "monthly"
)

// Dataset is a point-in-time snapshot of every record the analytics read.
type Dataset struct {
	Clients  []Client        `json:"clients"`
	Payments []Payment       `json:"payments"`
	Goals    []Goal          `json:"goals"`
	Visits   []BusinessVisit `json:"visits"`
}
