package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FormSubmissionStatus string

const (
	SubmissionPending   FormSubmissionStatus = "pending"
	SubmissionCompleted FormSubmissionStatus = "completed"
	SubmissionOverdue   FormSubmissionStatus = "overdue"
)

// FormSubmission is one obligation spawned per (booking, matching template)
// pair at booking-creation time. The token is the only credential needed to
// open and submit the public form.
type FormSubmission struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FormTemplateID uuid.UUID `gorm:"type:uuid;index;not null" json:"formTemplateId"`
	BookingID      uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	ContactID      uuid.UUID `gorm:"type:uuid;index;not null" json:"contactId"`

	Token uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"token"`

	Status      FormSubmissionStatus `gorm:"type:varchar(20);default:'pending';not null" json:"status"`
	Data        datatypes.JSON       `json:"data"`
	Deadline    *time.Time           `json:"deadline"`
	SubmittedAt *time.Time           `json:"submittedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *FormSubmission) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Token == uuid.Nil {
		s.Token = uuid.New()
	}
	return
}
