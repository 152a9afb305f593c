package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a customer of the business
type Client struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Email              *string   `gorm:"index" json:"email"`
	Phone              *string   `json:"phone"`
	Plan               string    `gorm:"default:starter;not null" json:"plan"`
	Status             string    `gorm:"default:active;not null;index" json:"status"`
	PlatformPreference *string   `json:"platform_preference"`
	PaymentStatus      *string   `json:"payment_status"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// Client plan constants
const (
	ClientPlanStarter = "starter"
	ClientPlanPro     = "pro"
)

// Client status constants
const (
	ClientStatusActive     = "active"
	ClientStatusInProgress = "in_progress"
	ClientStatusPaused     = "paused"
	ClientStatusCancelled  = "cancelled"
)

// IsKnownStatus reports whether the status is one of the recognised values.
// Unknown statuses come from older rows and are still accepted.
func (c *Client) IsKnownStatus() bool {
	switch c.Status {
	case ClientStatusActive, ClientStatusInProgress, ClientStatusPaused, ClientStatusCancelled:
		return true
	}
	return false
}
