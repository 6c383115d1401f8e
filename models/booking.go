package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingNoShow, BookingCancelled:
		return true
	}
	return false
}

// Booking stores times as zero-padded "HH:MM" and the date as "YYYY-MM-DD",
// so interval comparisons work lexically in SQL. EndTime is start plus the
// service duration; buffer minutes are never part of the span.
//
// A partial unique index over (service_id, booking_date, start_time),
// restricted to pending/confirmed rows, is the storage-level guard against
// two concurrent bookings winning the same slot. It lives outside gorm's
// tag syntax; see EnsureBookingSlotIndex.
type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;index;not null" json:"workspaceId"`
	ServiceID   uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	ContactID   uuid.UUID `gorm:"type:uuid;index;not null" json:"contactId"`

	BookingDate string `gorm:"type:varchar(10);not null" json:"bookingDate"`
	StartTime   string `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime     string `gorm:"type:varchar(5);not null" json:"endTime"`

	Status BookingStatus `gorm:"type:varchar(20);default:'confirmed';not null" json:"status"`
	Notes  string        `gorm:"type:text" json:"notes"`

	// Customer identity snapshot captured at booking time, independent of
	// the Contact record.
	CustomerName  string `gorm:"not null" json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// EnsureBookingSlotIndex creates the partial unique slot index. Cancelled,
// completed and no_show rows are excluded so a freed slot can be rebooked.
// Postgres and SQLite both support partial indexes with this syntax.
func EnsureBookingSlotIndex(db *gorm.DB) error {
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_service_slot
		 ON bookings (service_id, booking_date, start_time)
		 WHERE status IN ('pending', 'confirmed')`,
	).Error
}
