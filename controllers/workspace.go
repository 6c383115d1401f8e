package controllers

import (
	"errors"
	"net/http"

	"careops-backend/config"
	"careops-backend/models"
	"careops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateWorkspaceInput struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Timezone     string `json:"timezone"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
}

type UpdateWorkspaceInput struct {
	Name                   *string         `json:"name"`
	Address                *string         `json:"address"`
	Timezone               *string         `json:"timezone"`
	ContactEmail           *string         `json:"contactEmail"`
	WelcomeMessageTemplate *string         `json:"welcomeMessageTemplate"`
	ContactFormConfig      *datatypes.JSON `json:"contactFormConfig"`
	OnboardingStep         *int            `json:"onboardingStep"`
}

// CreateWorkspace bootstraps the tenant for the acting user and binds the
// user to it.
func CreateWorkspace(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateWorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	workspace := models.Workspace{
		Name:         input.Name,
		Slug:         utils.GenerateSlug(input.Name),
		Address:      input.Address,
		Timezone:     timezone,
		ContactEmail: input.ContactEmail,
		Status:       models.WorkspaceSetup,
		OwnerID:      userUUID,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userUUID).
			Update("workspace_id", workspace.ID).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create workspace")
		return
	}

	// Reissue the token so it carries the new workspace claim.
	token, err := utils.GenerateToken(userUUID.String(), workspace.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workspace": workspace, "token": token})
}

func GetWorkspace(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Workspace not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, workspace)
}

func UpdateWorkspace(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var input UpdateWorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Workspace not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		workspace.Name = *input.Name
	}
	if input.Address != nil {
		workspace.Address = *input.Address
	}
	if input.Timezone != nil {
		workspace.Timezone = *input.Timezone
	}
	if input.ContactEmail != nil {
		workspace.ContactEmail = *input.ContactEmail
	}
	if input.WelcomeMessageTemplate != nil {
		workspace.WelcomeMessageTemplate = *input.WelcomeMessageTemplate
	}
	if input.ContactFormConfig != nil {
		workspace.ContactFormConfig = *input.ContactFormConfig
	}
	if input.OnboardingStep != nil {
		workspace.OnboardingStep = *input.OnboardingStep
	}

	if err := config.DB.Save(&workspace).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, workspace)
}

// ActivateWorkspace flips the tenant live once onboarding requirements are
// met.
func ActivateWorkspace(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Workspace not found")
		return
	}

	var serviceCount int64
	config.DB.Model(&models.Service{}).Where("workspace_id = ?", workspaceID).Count(&serviceCount)
	if serviceCount == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "At least one service is required before activation")
		return
	}

	workspace.Status = models.WorkspaceActive
	workspace.OnboardingStep = 8
	if err := config.DB.Save(&workspace).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to activate workspace")
		return
	}

	c.JSON(http.StatusOK, workspace)
}

func GetOnboardingStatus(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	var workspace models.Workspace
	if err := config.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Workspace not found")
		return
	}

	var serviceCount, formCount, inventoryCount, staffCount int64
	config.DB.Model(&models.Service{}).Where("workspace_id = ?", workspaceID).Count(&serviceCount)
	config.DB.Model(&models.FormTemplate{}).Where("workspace_id = ?", workspaceID).Count(&formCount)
	config.DB.Model(&models.InventoryItem{}).Where("workspace_id = ?", workspaceID).Count(&inventoryCount)
	config.DB.Model(&models.User{}).Where("workspace_id = ? AND role = ?", workspaceID, models.RoleStaff).Count(&staffCount)

	c.JSON(http.StatusOK, gin.H{
		"currentStep":        workspace.OnboardingStep,
		"workspaceCreated":   true,
		"contactFormCreated": workspace.ContactFormConfig != nil,
		"servicesCreated":    serviceCount > 0,
		"formsCreated":       formCount > 0,
		"inventoryCreated":   inventoryCount > 0,
		"teamInvited":        staffCount > 0,
		"workspaceActivated": workspace.Status == models.WorkspaceActive,
		"canActivate":        serviceCount > 0,
	})
}
