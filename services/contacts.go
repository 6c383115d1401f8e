package services

import (
	"errors"

	"careops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolveOrCreateContact reuses an existing contact in the workspace when
// its email matches, then when its phone matches, otherwise creates one.
// Existing contacts are never merged or updated here.
func ResolveOrCreateContact(db *gorm.DB, workspaceID uuid.UUID, name, email, phone string, source models.ContactSource) (*models.Contact, error) {
	var existing models.Contact

	if email != "" {
		err := db.Where("workspace_id = ? AND email = ?", workspaceID, email).First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if phone != "" {
		err := db.Where("workspace_id = ? AND phone = ?", workspaceID, phone).First(&existing).Error
		if err == nil {
			return &existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	contact := models.Contact{
		WorkspaceID: workspaceID,
		Name:        name,
		Email:       email,
		Phone:       phone,
		Source:      source,
	}
	if err := db.Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}
