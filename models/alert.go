package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertType string

const (
	AlertInventoryLow       AlertType = "inventory_low"
	AlertFormOverdue        AlertType = "form_overdue"
	AlertBookingUnconfirmed AlertType = "booking_unconfirmed"
	AlertMessageUnanswered  AlertType = "message_unanswered"
	AlertIntegrationFailed  AlertType = "integration_failed"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is raised by system events and supports exactly one mutation:
// dismissal, which is one-way.
type Alert struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`

	Type        AlertType     `gorm:"type:varchar(30);not null" json:"type"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Severity    AlertSeverity `gorm:"type:varchar(10);default:'warning';not null" json:"severity"`

	LinkTo      string     `json:"linkTo"`
	RelatedID   *uuid.UUID `gorm:"type:uuid" json:"relatedId"`
	IsDismissed bool       `gorm:"default:false;not null" json:"isDismissed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Alert) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
