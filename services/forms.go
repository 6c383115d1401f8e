package services

import (
	"errors"
	"time"

	"careops-backend/models"
	"careops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// spawnObligations creates one FormSubmission per active template in the
// workspace whose linked services are empty (applies to all) or include the
// booked service. Runs inside the booking transaction; obligations are
// never created retroactively for pre-existing bookings.
func spawnObligations(tx *gorm.DB, booking *models.Booking, startMinutes int) error {
	var templates []models.FormTemplate
	if err := tx.Where("workspace_id = ? AND is_active = ?", booking.WorkspaceID, true).Find(&templates).Error; err != nil {
		return err
	}

	for _, template := range templates {
		if len(template.LinkedServiceIDs) > 0 && !template.LinkedServiceIDs.Contains(booking.ServiceID) {
			continue
		}

		var deadline *time.Time
		if template.DeadlineHours != nil {
			startAt, err := utils.CombineDateClock(booking.BookingDate, startMinutes, time.UTC)
			if err != nil {
				return err
			}
			d := startAt.Add(-time.Duration(*template.DeadlineHours) * time.Hour)
			deadline = &d
		}

		submission := models.FormSubmission{
			FormTemplateID: template.ID,
			BookingID:      booking.ID,
			ContactID:      booking.ContactID,
			Status:         models.SubmissionPending,
			Deadline:       deadline,
		}
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
	}

	return nil
}

// SweepOverdue reclassifies pending submissions whose deadline has passed,
// raising a form_overdue alert and an automation log entry per transition.
// Already-overdue and completed submissions are untouched, so the sweep is
// idempotent and safe to call concurrently or redundantly.
func SweepOverdue(db *gorm.DB, workspaceID uuid.UUID, now time.Time) (int, error) {
	count := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var due []models.FormSubmission
		err := tx.
			Joins("JOIN form_templates ON form_templates.id = form_submissions.form_template_id").
			Where("form_templates.workspace_id = ?", workspaceID).
			Where("form_submissions.status = ?", models.SubmissionPending).
			Where("form_submissions.deadline IS NOT NULL AND form_submissions.deadline < ?", now).
			Find(&due).Error
		if err != nil {
			return err
		}

		for i := range due {
			sub := &due[i]

			// Guard on status so a sweep racing another sweep (or a
			// submission landing between read and write) transitions each
			// row at most once.
			res := tx.Model(&models.FormSubmission{}).
				Where("id = ? AND status = ?", sub.ID, models.SubmissionPending).
				Update("status", models.SubmissionOverdue)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}

			relatedID := sub.ID
			if _, err := CreateAlert(tx, workspaceID, models.AlertFormOverdue,
				"Form overdue",
				"A form submission is past its deadline",
				models.SeverityWarning, "/dashboard/forms", &relatedID); err != nil {
				return err
			}
			if err := LogAutomation(tx, workspaceID, "form_overdue", "mark_overdue_and_alert",
				models.AutomationSuccess,
				map[string]interface{}{"form_submission_id": sub.ID.String()},
				nil, nil); err != nil {
				return err
			}
			count++
		}

		return nil
	})
	return count, err
}

// SubmitForm completes the obligation behind a public form token. A second
// attempt on a completed token fails rather than overwriting.
func SubmitForm(db *gorm.DB, token string, data datatypes.JSON) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return ErrNotFound
	}

	var submission models.FormSubmission
	if err := db.Where("token = ?", tokenUUID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if submission.Status == models.SubmissionCompleted {
		return ErrAlreadyCompleted
	}

	now := time.Now()
	return db.Model(&submission).Updates(map[string]interface{}{
		"data":         data,
		"status":       models.SubmissionCompleted,
		"submitted_at": &now,
	}).Error
}

// PublicForm is what the public form endpoint renders for a token.
type PublicForm struct {
	FormName        string                      `json:"formName"`
	FormDescription string                      `json:"formDescription"`
	Fields          datatypes.JSON              `json:"fields"`
	BookingDate     string                      `json:"bookingDate"`
	ServiceName     string                      `json:"serviceName"`
	Status          models.FormSubmissionStatus `json:"status"`
}

func GetPublicForm(db *gorm.DB, token string) (*PublicForm, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrNotFound
	}

	var submission models.FormSubmission
	if err := db.Where("token = ?", tokenUUID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var template models.FormTemplate
	if err := db.First(&template, "id = ?", submission.FormTemplateID).Error; err != nil {
		return nil, err
	}

	form := PublicForm{
		FormName:        template.Name,
		FormDescription: template.Description,
		Fields:          template.Fields,
		Status:          submission.Status,
	}

	var booking models.Booking
	if err := db.Preload("Service").First(&booking, "id = ?", submission.BookingID).Error; err == nil {
		form.BookingDate = booking.BookingDate
		if booking.Service != nil {
			form.ServiceName = booking.Service.Name
		}
	}

	return &form, nil
}

// BookingFormStatus rolls the states of a booking's obligations up to a
// single value: completed when all are completed, overdue when any is
// overdue, else pending. Empty when the booking spawned no obligations.
func BookingFormStatus(db *gorm.DB, bookingID uuid.UUID) (string, error) {
	var submissions []models.FormSubmission
	if err := db.Where("booking_id = ?", bookingID).Find(&submissions).Error; err != nil {
		return "", err
	}
	if len(submissions) == 0 {
		return "", nil
	}

	allCompleted := true
	anyOverdue := false
	for _, s := range submissions {
		if s.Status != models.SubmissionCompleted {
			allCompleted = false
		}
		if s.Status == models.SubmissionOverdue {
			anyOverdue = true
		}
	}
	switch {
	case allCompleted:
		return "completed", nil
	case anyOverdue:
		return "overdue", nil
	default:
		return "pending", nil
	}
}
