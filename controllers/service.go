package controllers

import (
	"errors"
	"net/http"

	"careops-backend/config"
	"careops-backend/models"
	"careops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityWindowInput struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	IsActive  *bool  `json:"isActive"`
}

type CreateServiceInput struct {
	Name                string                    `json:"name" binding:"required"`
	Description         string                    `json:"description"`
	Price               float64                   `json:"price" binding:"min=0"`
	DurationMinutes     int                       `json:"durationMinutes" binding:"min=1"`
	BufferMinutes       int                       `json:"bufferMinutes" binding:"min=0"`
	AvailabilityWindows []AvailabilityWindowInput `json:"availabilityWindows"`
}

type UpdateServiceInput struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"durationMinutes"`
	BufferMinutes   *int     `json:"bufferMinutes"`
	IsActive        *bool    `json:"isActive"`
}

// CreateService creates a bookable service together with its weekly
// recurring availability windows.
func CreateService(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	windows := make([]models.AvailabilityWindow, 0, len(input.AvailabilityWindows))
	for _, w := range input.AvailabilityWindows {
		start, err := utils.ParseClock(w.StartTime)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid window start time")
			return
		}
		end, err := utils.ParseClock(w.EndTime)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid window end time")
			return
		}
		if start >= end {
			utils.RespondWithError(c, http.StatusBadRequest, "Window start must be before end")
			return
		}
		active := true
		if w.IsActive != nil {
			active = *w.IsActive
		}
		windows = append(windows, models.AvailabilityWindow{
			DayOfWeek: w.DayOfWeek,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			IsActive:  active,
		})
	}

	service := models.Service{
		WorkspaceID:         workspaceUUID,
		Name:                input.Name,
		Description:         input.Description,
		Price:               input.Price,
		DurationMinutes:     input.DurationMinutes,
		BufferMinutes:       input.BufferMinutes,
		IsActive:            true,
		AvailabilityWindows: windows,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func GetServices(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var svcs []models.Service
	if err := config.DB.Preload("AvailabilityWindows").
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&svcs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, svcs)
}

func GetService(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Preload("AvailabilityWindows").
		Where("workspace_id = ? AND id = ?", workspaceID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

func UpdateService(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.DurationMinutes != nil {
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.BufferMinutes != nil {
		service.BufferMinutes = *input.BufferMinutes
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

func DeleteService(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, serviceUUID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
