package controllers

import (
	"errors"
	"net/http"

	"careops-backend/config"
	"careops-backend/models"
	"careops-backend/services"
	"careops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateContactInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// CreateContact adds a contact manually; the email/phone dedup rule still
// applies.
func CreateContact(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	var input CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	contact, err := services.ResolveOrCreateContact(config.DB, workspaceUUID, input.Name, input.Email, input.Phone, models.SourceManual)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	if input.Notes != "" && contact.Notes == "" {
		config.DB.Model(contact).Update("notes", input.Notes)
		contact.Notes = input.Notes
	}

	c.JSON(http.StatusCreated, contact)
}

// GetContacts lists the workspace contacts, optionally filtered by a search
// term over name, email and phone.
func GetContacts(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	query := config.DB.Where("workspace_id = ?", workspaceID)
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var contacts []models.Contact
	if err := query.Order("created_at DESC").Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

func GetContact(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	contactUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	var contact models.Contact
	if err := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, contactUUID).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, contact)
}
