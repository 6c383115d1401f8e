package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"careops-backend/config"
	"careops-backend/models"
	"careops-backend/services"
	"careops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PublicBookingInput struct {
	ServiceID     string `json:"serviceId" binding:"required"`
	BookingDate   string `json:"bookingDate" binding:"required"`
	StartTime     string `json:"startTime" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Notes         string `json:"notes"`
}

type PublicContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

type PublicFormInput struct {
	Data datatypes.JSON `json:"data" binding:"required"`
}

func activeWorkspaceBySlug(c *gin.Context) (*models.Workspace, bool) {
	var workspace models.Workspace
	err := config.DB.Where("slug = ? AND status = ?", c.Param("slug"), models.WorkspaceActive).
		First(&workspace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &workspace, true
}

// GetPublicWorkspace is the public landing payload for a booking page.
func GetPublicWorkspace(c *gin.Context) {
	workspace, ok := activeWorkspaceBySlug(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":              workspace.Name,
		"slug":              workspace.Slug,
		"address":           workspace.Address,
		"timezone":          workspace.Timezone,
		"contactFormConfig": workspace.ContactFormConfig,
	})
}

func GetPublicServices(c *gin.Context) {
	workspace, ok := activeWorkspaceBySlug(c)
	if !ok {
		return
	}

	var publicServices []models.Service
	if err := config.DB.Where("workspace_id = ? AND is_active = ?", workspace.ID, true).
		Order("name").
		Find(&publicServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, publicServices)
}

// GetPublicSlots computes the bookable start times for one service on one
// date.
func GetPublicSlots(c *gin.Context) {
	workspace, ok := activeWorkspaceBySlug(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	targetDate := c.Query("date")
	if targetDate == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Query parameter 'date' is required")
		return
	}

	// Scope the lookup to the workspace before computing anything.
	var service models.Service
	if err := config.DB.Where("workspace_id = ? AND id = ? AND is_active = ?", workspace.ID, serviceUUID, true).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	loc, err := time.LoadLocation(workspace.Timezone)
	if err != nil {
		loc = time.UTC
	}

	slots, err := services.ComputeAvailableSlotsIn(config.DB, service.ID, targetDate, loc)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": targetDate, "slots": slots})
}

// CreatePublicBooking is the public booking endpoint. The heavy lifting,
// conflict check through inventory deduction, happens in one unit of work.
func CreatePublicBooking(c *gin.Context) {
	workspace, ok := activeWorkspaceBySlug(c)
	if !ok {
		return
	}

	var input PublicBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.CustomerEmail == "" && input.CustomerPhone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Email or phone is required")
		return
	}
	if input.CustomerPhone != "" && !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	serviceUUID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	booking, err := services.CreateBooking(config.DB, Notify, services.CreateBookingInput{
		WorkspaceID:   workspace.ID,
		ServiceID:     serviceUUID,
		BookingDate:   input.BookingDate,
		StartTime:     input.StartTime,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Notes:         input.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking details")
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		case errors.Is(err, services.ErrSlotUnavailable):
			utils.RespondWithError(c, http.StatusConflict, "This slot is no longer available")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	ensureBookingThread(workspace, booking)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Booking confirmed",
		"bookingId":   booking.ID,
		"bookingDate": booking.BookingDate,
		"startTime":   booking.StartTime,
		"endTime":     booking.EndTime,
	})
}

// ensureBookingThread keeps each contact's inbox thread alive: the booking
// confirmation lands in their existing active conversation, or opens one.
func ensureBookingThread(workspace *models.Workspace, booking *models.Booking) {
	var conversation models.Conversation
	err := config.DB.Where("workspace_id = ? AND contact_id = ? AND status = ?",
		workspace.ID, booking.ContactID, models.ConversationActive).
		First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conversation = models.Conversation{
			WorkspaceID:   workspace.ID,
			ContactID:     booking.ContactID,
			Subject:       "Booking " + booking.BookingDate + " " + booking.StartTime,
			Status:        models.ConversationActive,
			LastMessageAt: time.Now().UTC(),
		}
		if err := config.DB.Create(&conversation).Error; err != nil {
			log.Printf("Failed to open conversation for booking %s: %v", booking.ID, err)
			return
		}
	} else if err != nil {
		log.Printf("Failed to look up conversation for booking %s: %v", booking.ID, err)
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		Direction:      models.DirectionOutbound,
		Channel:        "email",
		Subject:        conversation.Subject,
		Content: "Your booking on " + booking.BookingDate + " at " + booking.StartTime +
			" is confirmed.",
	}
	if err := config.DB.Create(&message).Error; err != nil {
		log.Printf("Failed to record confirmation message for booking %s: %v", booking.ID, err)
		return
	}
	if err := config.DB.Model(&conversation).Update("last_message_at", time.Now().UTC()).Error; err != nil {
		log.Printf("Failed to touch conversation %s: %v", conversation.ID, err)
	}
}

// SubmitPublicContact handles the public contact form: dedup the contact,
// open a conversation, and greet on email when a welcome template is set.
func SubmitPublicContact(c *gin.Context) {
	workspace, ok := activeWorkspaceBySlug(c)
	if !ok {
		return
	}

	var input PublicContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Email == "" && input.Phone == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Email or phone is required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	var conversation models.Conversation
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		contact, err := services.ResolveOrCreateContact(tx, workspace.ID,
			strings.TrimSpace(input.Name), email, phone, models.SourceContactForm)
		if err != nil {
			return err
		}

		conversation = models.Conversation{
			WorkspaceID:   workspace.ID,
			ContactID:     contact.ID,
			Subject:       "New inquiry from " + contact.Name,
			Status:        models.ConversationActive,
			LastMessageAt: time.Now().UTC(),
		}
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}

		message := models.Message{
			ConversationID: conversation.ID,
			Direction:      models.DirectionInbound,
			Channel:        "email",
			Content:        input.Message,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		contactID := contact.ID
		return services.LogAutomation(tx, workspace.ID, "contact_form_submitted", "create_conversation",
			models.AutomationSuccess,
			map[string]interface{}{"conversation_id": conversation.ID.String()},
			&contactID, nil)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to submit contact form")
		return
	}

	if workspace.WelcomeMessageTemplate != "" && email != "" {
		body := strings.ReplaceAll(workspace.WelcomeMessageTemplate, "{name}", input.Name)
		Notify.EnqueueEmail(workspace.ID, email, "Welcome to "+workspace.Name, body)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for reaching out, we will get back to you shortly"})
}

func GetPublicFormByToken(c *gin.Context) {
	form, err := services.GetPublicForm(config.DB, c.Param("token"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Form not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load form")
		}
		return
	}

	c.JSON(http.StatusOK, form)
}

func SubmitPublicForm(c *gin.Context) {
	var input PublicFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := services.SubmitForm(config.DB, c.Param("token"), input.Data); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Form not found")
		case errors.Is(err, services.ErrAlreadyCompleted):
			utils.RespondWithError(c, http.StatusConflict, "This form has already been submitted")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to submit form")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form submitted successfully"})
}
