package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactSource string

const (
	SourceContactForm ContactSource = "contact_form"
	SourceBooking     ContactSource = "booking"
	SourceManual      ContactSource = "manual"
)

// Contact is the workspace-scoped customer record. Bookings keep their own
// snapshot of name/email/phone, so a contact is never updated implicitly.
type Contact struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`

	Name   string        `gorm:"not null" json:"name"`
	Email  string        `gorm:"index" json:"email"`
	Phone  string        `gorm:"index" json:"phone"`
	Source ContactSource `gorm:"type:varchar(20);default:'contact_form';not null" json:"source"`
	Notes  string        `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
