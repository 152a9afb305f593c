package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment represents money received (or expected) from a client
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index" json:"client_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status      string          `gorm:"default:pending;not null;index" json:"status"`
	PaymentDate time.Time       `gorm:"index" json:"payment_date"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Associations
	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Payment status constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
	PaymentStatusFailed    = "failed"
)

// IsConfirmed returns true if the payment counts toward revenue
func (p *Payment) IsConfirmed() bool {
	return p.Status == PaymentStatusConfirmed
}

// MayConfirm returns true if payment can be confirmed
func (p *Payment) MayConfirm() bool {
	return p.Status == PaymentStatusPending
}

// MayFail returns true if payment can be marked as failed
func (p *Payment) MayFail() bool {
	return p.Status == PaymentStatusPending
}

// MayRetry returns true if a failed payment can go back to pending
func (p *Payment) MayRetry() bool {
	return p.Status == PaymentStatusFailed
}
