package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageMap maps a service id to the quantity consumed per booking of that
// service. Stored as a JSON object.
type UsageMap map[string]int

func (m UsageMap) Value() (driver.Value, error) {
	if m == nil {
		m = UsageMap{}
	}
	return json.Marshal(m)
}

func (m *UsageMap) Scan(value interface{}) error {
	if value == nil {
		*m = UsageMap{}
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
	return json.Unmarshal(b, m)
}

type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`

	Name string `gorm:"not null" json:"name"`
	Unit string `gorm:"default:'pieces';not null" json:"unit"`

	// CurrentQuantity is clamped at zero, never negative.
	CurrentQuantity int `gorm:"default:0;not null" json:"currentQuantity"`
	LowThreshold    int `gorm:"default:5;not null" json:"lowThreshold"`

	UsagePerBooking UsageMap `gorm:"type:json" json:"usagePerBooking"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
