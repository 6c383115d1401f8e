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

type CreateInventoryItemInput struct {
	Name            string          `json:"name" binding:"required"`
	Unit            string          `json:"unit"`
	CurrentQuantity int             `json:"currentQuantity" binding:"min=0"`
	LowThreshold    int             `json:"lowThreshold" binding:"min=0"`
	UsagePerBooking models.UsageMap `json:"usagePerBooking"`
}

type UpdateInventoryItemInput struct {
	Name            *string          `json:"name"`
	Unit            *string          `json:"unit"`
	CurrentQuantity *int             `json:"currentQuantity"`
	LowThreshold    *int             `json:"lowThreshold"`
	UsagePerBooking *models.UsageMap `json:"usagePerBooking"`
	IsActive        *bool            `json:"isActive"`
}

type inventoryView struct {
	models.InventoryItem
	IsLowStock bool `json:"isLowStock"`
	IsCritical bool `json:"isCritical"`
}

func CreateInventoryItem(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	var input CreateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	unit := input.Unit
	if unit == "" {
		unit = "pieces"
	}

	item := models.InventoryItem{
		WorkspaceID:     workspaceUUID,
		Name:            input.Name,
		Unit:            unit,
		CurrentQuantity: input.CurrentQuantity,
		LowThreshold:    input.LowThreshold,
		UsagePerBooking: input.UsagePerBooking,
		IsActive:        true,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func GetInventoryItems(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var items []models.InventoryItem
	if err := config.DB.Where("workspace_id = ?", workspaceID).
		Order("name").
		Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve inventory")
		return
	}

	views := make([]inventoryView, 0, len(items))
	for _, item := range items {
		views = append(views, inventoryView{
			InventoryItem: item,
			IsLowStock:    item.CurrentQuantity <= item.LowThreshold,
			IsCritical:    item.CurrentQuantity == 0,
		})
	}

	c.JSON(http.StatusOK, views)
}

func UpdateInventoryItem(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	var input UpdateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Quantity edits go through the ledger so non-negativity holds.
	if input.CurrentQuantity != nil {
		updated, err := services.AdjustQuantity(config.DB, workspaceUUID, itemUUID, *input.CurrentQuantity)
		if err != nil {
			if errors.Is(err, services.ErrInvalidInput) {
				utils.RespondWithError(c, http.StatusBadRequest, "Quantity must not be negative")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quantity")
			}
			return
		}
		item.CurrentQuantity = updated.CurrentQuantity
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.LowThreshold != nil {
		item.LowThreshold = *input.LowThreshold
	}
	if input.UsagePerBooking != nil {
		item.UsagePerBooking = *input.UsagePerBooking
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update inventory item")
		return
	}

	c.JSON(http.StatusOK, item)
}

func DeleteInventoryItem(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	itemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	result := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, itemUUID).
		Delete(&models.InventoryItem{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete inventory item")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Inventory item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

// GetAlerts lists the workspace's alerts, active by default.
func GetAlerts(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	dismissed := c.Query("dismissed") == "true"
	alerts, err := services.GetAlerts(config.DB, workspaceUUID, dismissed)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve alerts")
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func DismissAlert(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	alertUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid alert ID format")
		return
	}

	if err := services.DismissAlert(config.DB, workspaceUUID, alertUUID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Alert not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to dismiss alert")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert dismissed"})
}
