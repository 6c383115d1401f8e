package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WorkspaceStatus string

const (
	WorkspaceSetup  WorkspaceStatus = "setup"
	WorkspaceActive WorkspaceStatus = "active"
)

type Workspace struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"not null" json:"name"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`

	Address      string `json:"address"`
	Timezone     string `gorm:"default:'UTC'" json:"timezone"`
	ContactEmail string `json:"contactEmail"`

	WelcomeMessageTemplate string         `gorm:"type:text" json:"welcomeMessageTemplate"`
	ContactFormConfig      datatypes.JSON `json:"contactFormConfig"`

	Status         WorkspaceStatus `gorm:"type:varchar(20);default:'setup';not null" json:"status"`
	OnboardingStep int             `gorm:"default:1" json:"onboardingStep"`

	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
