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

type UpdateBookingStatusInput struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

type bookingView struct {
	models.Booking
	ServiceName     string `json:"serviceName"`
	ServiceDuration int    `json:"serviceDuration"`
	FormStatus      string `json:"formStatus"`
}

// GetBookings lists bookings with optional status and date filters, each
// carrying a rollup of its form obligations.
func GetBookings(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Service").Where("workspace_id = ?", workspaceID)
	if status := c.Query("status"); status != "" {
		if !models.BookingStatus(status).Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date filter")
			return
		}
		query = query.Where("booking_date = ?", date)
	}

	var bookings []models.Booking
	if err := query.Order("booking_date DESC, start_time DESC").Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toBookingView(b))
	}

	c.JSON(http.StatusOK, views)
}

func GetBooking(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Service").
		Where("workspace_id = ? AND id = ?", workspaceID, bookingUUID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, toBookingView(booking))
}

func UpdateBookingStatus(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := services.UpdateBookingStatus(config.DB, workspaceUUID, bookingUUID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, services.ErrInvalidInput):
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking status")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

func toBookingView(b models.Booking) bookingView {
	view := bookingView{Booking: b}
	if b.Service != nil {
		view.ServiceName = b.Service.Name
		view.ServiceDuration = b.Service.DurationMinutes
	}
	if status, err := services.BookingFormStatus(config.DB, b.ID); err == nil {
		view.FormStatus = status
	}
	return view
}
