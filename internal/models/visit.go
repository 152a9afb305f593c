package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessVisit is an in-person visit to a client's business
type BusinessVisit struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Location  string     `json:"location"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Parsed is filled from Location when the row is loaded
	Parsed *Location `gorm:"-" json:"place,omitempty"`

	// Associations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName specifies the table name for BusinessVisit
func (BusinessVisit) TableName() string {
	return "business_visits"
}

// Place parses the free-text location of the visit
func (v *BusinessVisit) Place() Location {
	return ParseLocation(v.Location)
}

// AfterFind parses the location so API responses and search see its parts
func (v *BusinessVisit) AfterFind(tx *gorm.DB) error {
	place := v.Place()
	v.Parsed = &place
	return nil
}
