package services

import (
	"encoding/json"
	"errors"

	"careops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAlert appends a user-facing, dismissible alert.
func CreateAlert(db *gorm.DB, workspaceID uuid.UUID, alertType models.AlertType, title, description string, severity models.AlertSeverity, linkTo string, relatedID *uuid.UUID) (*models.Alert, error) {
	alert := models.Alert{
		WorkspaceID: workspaceID,
		Type:        alertType,
		Title:       title,
		Description: description,
		Severity:    severity,
		LinkTo:      linkTo,
		RelatedID:   relatedID,
	}
	if err := db.Create(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// DismissAlert is the only mutation alerts support, and it is one-way.
func DismissAlert(db *gorm.DB, workspaceID, alertID uuid.UUID) error {
	var alert models.Alert
	if err := db.Where("workspace_id = ? AND id = ?", workspaceID, alertID).First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if alert.IsDismissed {
		return nil
	}
	return db.Model(&alert).Update("is_dismissed", true).Error
}

func GetAlerts(db *gorm.DB, workspaceID uuid.UUID, dismissed bool) ([]models.Alert, error) {
	var alerts []models.Alert
	err := db.Where("workspace_id = ? AND is_dismissed = ?", workspaceID, dismissed).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// LogAutomation appends an entry to the immutable automation trail. Failed
// and skipped outcomes are recorded too, for visibility.
func LogAutomation(db *gorm.DB, workspaceID uuid.UUID, eventType, action string, status models.AutomationStatus, details map[string]interface{}, contactID, bookingID *uuid.UUID) error {
	entry := models.AutomationLog{
		WorkspaceID:      workspaceID,
		EventType:        eventType,
		ActionTaken:      action,
		Status:           status,
		RelatedContactID: contactID,
		RelatedBookingID: bookingID,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return err
		}
		entry.Details = raw
	}
	return db.Create(&entry).Error
}

func GetAutomationLogs(db *gorm.DB, workspaceID uuid.UUID, limit int) ([]models.AutomationLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.AutomationLog
	err := db.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
