package controllers

import (
	"net/http"

	"careops-backend/config"
	"careops-backend/models"
	"careops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateFormTemplateInput struct {
	Name             string         `json:"name" binding:"required"`
	Description      string         `json:"description"`
	Fields           datatypes.JSON `json:"fields" binding:"required"`
	LinkedServiceIDs []string       `json:"linkedServiceIds"`
	DeadlineHours    *int           `json:"deadlineHours"`
}

func CreateFormTemplate(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	var input CreateFormTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.DeadlineHours != nil && *input.DeadlineHours < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Deadline hours must not be negative")
		return
	}
	for _, id := range input.LinkedServiceIDs {
		if _, err := uuid.Parse(id); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid linked service ID: "+id)
			return
		}
	}

	template := models.FormTemplate{
		WorkspaceID:      workspaceUUID,
		Name:             input.Name,
		Description:      input.Description,
		Fields:           input.Fields,
		LinkedServiceIDs: models.UUIDList(input.LinkedServiceIDs),
		DeadlineHours:    input.DeadlineHours,
		IsActive:         true,
	}

	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create form template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

func GetFormTemplates(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var templates []models.FormTemplate
	if err := config.DB.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve form templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetFormSubmissions lists every obligation in the workspace with its
// template, contact and booking context.
func GetFormSubmissions(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var submissions []models.FormSubmission
	if err := config.DB.
		Joins("JOIN form_templates ON form_templates.id = form_submissions.form_template_id").
		Where("form_templates.workspace_id = ?", workspaceID).
		Order("form_submissions.created_at DESC").
		Find(&submissions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve form submissions")
		return
	}

	type submissionView struct {
		models.FormSubmission
		FormName    string `json:"formName"`
		ContactName string `json:"contactName"`
		BookingDate string `json:"bookingDate"`
	}

	views := make([]submissionView, 0, len(submissions))
	for _, s := range submissions {
		view := submissionView{FormSubmission: s}

		var template models.FormTemplate
		if err := config.DB.First(&template, "id = ?", s.FormTemplateID).Error; err == nil {
			view.FormName = template.Name
		}
		var contact models.Contact
		if err := config.DB.First(&contact, "id = ?", s.ContactID).Error; err == nil {
			view.ContactName = contact.Name
		}
		var booking models.Booking
		if err := config.DB.First(&booking, "id = ?", s.BookingID).Error; err == nil {
			view.BookingDate = booking.BookingDate
		}

		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}
