package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`

	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`

	DurationMinutes int  `gorm:"default:30;not null" json:"durationMinutes"`
	BufferMinutes   int  `gorm:"default:0;not null" json:"bufferMinutes"`
	IsActive        bool `gorm:"default:true" json:"isActive"`

	AvailabilityWindows []AvailabilityWindow `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"availabilityWindows"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AvailabilityWindow is a weekly recurring bookable window. DayOfWeek runs
// 0=Monday..6=Sunday. Windows for the same service/day may overlap; the
// availability engine does not deduplicate them.
type AvailabilityWindow struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	DayOfWeek int    `gorm:"not null" json:"dayOfWeek"`
	StartTime string `gorm:"type:varchar(5);not null" json:"startTime"` // "HH:MM"
	EndTime   string `gorm:"type:varchar(5);not null" json:"endTime"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (w *AvailabilityWindow) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
