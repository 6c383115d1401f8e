package services

import (
	"errors"
	"fmt"
	"strings"

	"careops-backend/models"
	"careops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBookingInput struct {
	WorkspaceID   uuid.UUID
	ServiceID     uuid.UUID
	BookingDate   string // "YYYY-MM-DD"
	StartTime     string // "HH:MM"
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// CreateBooking runs the whole booking side-effect sequence as one atomic
// unit of work: slot conflict re-check under a row lock, contact
// resolution, the booking write, form-obligation spawning, inventory
// deduction and the audit entry. Any failure rolls the whole unit back.
//
// The row lock plus the (service, date, start) unique index guarantee that
// of two concurrent calls for the same slot exactly one succeeds; the loser
// surfaces ErrSlotUnavailable.
func CreateBooking(db *gorm.DB, notifier *Notifier, in CreateBookingInput) (*models.Booking, error) {
	startMinutes, err := utils.ParseClock(in.StartTime)
	if err != nil {
		return nil, ErrInvalidInput
	}
	date, err := utils.ParseDate(in.BookingDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if in.CustomerName == "" {
		return nil, ErrInvalidInput
	}

	// time.Parse tolerates unpadded fields like "9:00" and "2030-1-7".
	// Re-render both so the stored row, the lexical SQL comparisons and the
	// unique index all see one canonical form.
	in.StartTime = utils.FormatClock(startMinutes)
	in.BookingDate = utils.FormatDate(date)

	var booking *models.Booking
	var service models.Service

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ? AND id = ?", in.WorkspaceID, in.ServiceID).First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		endMinutes := startMinutes + service.DurationMinutes
		endTime := utils.FormatClock(endMinutes)

		// Lock any booking that would overlap so concurrent creators
		// serialize on the same rows. SQLite has no row locks; its
		// single-writer model already serializes.
		q := tx.Model(&models.Booking{})
		if tx.Dialector.Name() != "sqlite" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var conflicting models.Booking
		err := q.
			Where("service_id = ? AND booking_date = ? AND status IN ?",
				in.ServiceID, in.BookingDate, []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
			Where("start_time < ? AND end_time > ?", endTime, in.StartTime).
			Take(&conflicting).Error
		if err == nil {
			return ErrSlotUnavailable
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		contact, err := ResolveOrCreateContact(tx, in.WorkspaceID, in.CustomerName, in.CustomerEmail, in.CustomerPhone, models.SourceBooking)
		if err != nil {
			return err
		}

		booking = &models.Booking{
			WorkspaceID:   in.WorkspaceID,
			ServiceID:     in.ServiceID,
			ContactID:     contact.ID,
			BookingDate:   in.BookingDate,
			StartTime:     in.StartTime,
			EndTime:       endTime,
			Status:        models.BookingConfirmed,
			Notes:         in.Notes,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
		}
		if err := tx.Create(booking).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrSlotUnavailable
			}
			return err
		}

		if err := spawnObligations(tx, booking, startMinutes); err != nil {
			return err
		}

		if err := DeductForBooking(tx, in.WorkspaceID, in.ServiceID); err != nil {
			return err
		}

		contactID := contact.ID
		bookingID := booking.ID
		return LogAutomation(tx, in.WorkspaceID, "booking_created", "send_confirmation",
			models.AutomationSuccess,
			map[string]interface{}{"booking_id": bookingID.String(), "contact_id": contactID.String()},
			&contactID, &bookingID)
	})
	if err != nil {
		return nil, err
	}

	// Confirmation is fire-and-forget, outside the unit of work; delivery
	// failures are logged, never surfaced.
	if notifier != nil && in.CustomerEmail != "" {
		notifier.EnqueueEmail(in.WorkspaceID, in.CustomerEmail,
			"Booking Confirmed - "+service.Name,
			confirmationBody(booking, &service))
	}

	return booking, nil
}

// UpdateBookingStatus is the only path that mutates a booking's status.
func UpdateBookingStatus(db *gorm.DB, workspaceID, bookingID uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	var booking models.Booking
	if err := db.Where("workspace_id = ? AND id = ?", workspaceID, bookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := db.Model(&booking).Update("status", status).Error; err != nil {
		return nil, err
	}
	booking.Status = status
	return &booking, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers without error translation.
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func confirmationBody(b *models.Booking, s *models.Service) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour booking has been confirmed:\n\nService: %s\nDate: %s\nTime: %s - %s\nDuration: %d minutes\n\nThank you!",
		b.CustomerName, s.Name, b.BookingDate, b.StartTime, b.EndTime, s.DurationMinutes)
}
