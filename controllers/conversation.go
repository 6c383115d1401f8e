package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"careops-backend/config"
	"careops-backend/models"
	"careops-backend/services"
	"careops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReplyInput struct {
	Content string `json:"content" binding:"required"`
	Channel string `json:"channel"`
}

func GetConversations(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	query := config.DB.Where("workspace_id = ?", workspaceID).
		Preload("Contact").
		Order("last_message_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var conversations []models.Conversation
	if err := query.Find(&conversations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve conversations")
		return
	}

	c.JSON(http.StatusOK, conversations)
}

func GetConversation(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	conversationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid conversation ID format")
		return
	}

	var conversation models.Conversation
	if err := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, conversationUUID).
		Preload("Contact").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !conversation.IsRead {
		config.DB.Model(&conversation).Update("is_read", true)
	}

	c.JSON(http.StatusOK, conversation)
}

// ReplyToConversation records a staff reply and delivers it on the
// conversation's channel. A manual reply pauses automated follow-ups.
func ReplyToConversation(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	conversationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid conversation ID format")
		return
	}

	var input ReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	userID, _ := c.Get("userId")
	var senderID *uuid.UUID
	if idStr, ok := userID.(string); ok {
		if parsed, err := uuid.Parse(idStr); err == nil {
			senderID = &parsed
		}
	}

	var conversation models.Conversation
	if err := config.DB.Where("workspace_id = ? AND id = ?", workspaceID, conversationUUID).
		Preload("Contact").
		First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	channel := input.Channel
	if channel == "" {
		channel = "email"
	}

	message := models.Message{
		ConversationID: conversation.ID,
		Direction:      models.DirectionOutbound,
		Channel:        channel,
		SenderID:       senderID,
		Subject:        conversation.Subject,
		Content:        input.Content,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&conversation).Updates(map[string]interface{}{
			"last_message_at":   time.Now().UTC(),
			"automation_paused": true,
			"is_read":           true,
		}).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send reply")
		return
	}

	if conversation.Contact != nil {
		switch channel {
		case "sms":
			if conversation.Contact.Phone != "" {
				Notify.EnqueueSMS(workspaceUUID, conversation.Contact.Phone, input.Content)
			}
		default:
			if conversation.Contact.Email != "" {
				Notify.EnqueueEmail(workspaceUUID, conversation.Contact.Email, conversation.Subject, input.Content)
			}
		}
	}

	if err := services.LogAutomation(config.DB, workspaceUUID, "manual_reply", "pause_automation", models.AutomationSuccess,
		map[string]interface{}{"conversationId": conversation.ID.String()}, &conversation.ContactID, nil); err != nil {
		log.Printf("Failed to log manual reply for conversation %s: %v", conversation.ID, err)
	}

	c.JSON(http.StatusCreated, message)
}

func CloseConversation(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}

	conversationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid conversation ID format")
		return
	}

	result := config.DB.Model(&models.Conversation{}).
		Where("workspace_id = ? AND id = ?", workspaceID, conversationUUID).
		Update("status", models.ConversationClosed)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to close conversation")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation closed"})
}
