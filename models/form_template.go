package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UUIDList is stored as a JSON array of id strings.
type UUIDList []string

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*l = UUIDList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	s := id.String()
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// FormTemplate describes an intake form customers must fill in for a
// booking. An empty LinkedServiceIDs list means the form applies to every
// service in the workspace.
type FormTemplate struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Fields           datatypes.JSON `json:"fields"` // [{name, type, required, options}]
	LinkedServiceIDs UUIDList       `gorm:"type:json" json:"linkedServiceIds"`

	// Hours before the booking start at which the submission falls due.
	// Nil means the obligation never goes overdue.
	DeadlineHours *int `json:"deadlineHours"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *FormTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
