package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AutomationStatus string

const (
	AutomationSuccess AutomationStatus = "success"
	AutomationFailed  AutomationStatus = "failed"
	AutomationSkipped AutomationStatus = "skipped"
)

// AutomationLog is the append-only audit trail of every automated action.
// Entries are never updated or deleted.
type AutomationLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`

	EventType   string           `gorm:"type:varchar(100);not null" json:"eventType"`
	ActionTaken string           `gorm:"not null" json:"actionTaken"`
	Status      AutomationStatus `gorm:"type:varchar(10);default:'success';not null" json:"status"`
	Details     datatypes.JSON   `json:"details"`

	RelatedContactID *uuid.UUID `gorm:"type:uuid" json:"relatedContactId"`
	RelatedBookingID *uuid.UUID `gorm:"type:uuid" json:"relatedBookingId"`

	CreatedAt time.Time `json:"createdAt"`
}

func (l *AutomationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
