package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"careops-backend/config"
	"careops-backend/models"
	"careops-backend/services"
	"careops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetDashboardStats returns the overview counters for the workspace. The
// overdue sweep runs first so the numbers reflect deadlines that have just
// passed, not only the last scheduled run.
func GetDashboardStats(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	now := time.Now().UTC()
	if _, err := services.SweepOverdue(config.DB, workspaceUUID, now); err != nil {
		log.Printf("Dashboard overdue sweep failed for workspace %s: %v", workspaceID, err)
	}

	today := utils.FormatDate(now)

	var todayBookings int64
	config.DB.Model(&models.Booking{}).
		Where("workspace_id = ? AND booking_date = ? AND status IN ?",
			workspaceID, today, []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Count(&todayBookings)

	var pendingBookings int64
	config.DB.Model(&models.Booking{}).
		Where("workspace_id = ? AND status = ?", workspaceID, models.BookingPending).
		Count(&pendingBookings)

	var totalContacts int64
	config.DB.Model(&models.Contact{}).
		Where("workspace_id = ?", workspaceID).
		Count(&totalContacts)

	var unreadConversations int64
	config.DB.Model(&models.Conversation{}).
		Where("workspace_id = ? AND is_read = ?", workspaceID, false).
		Count(&unreadConversations)

	var activeAlerts int64
	config.DB.Model(&models.Alert{}).
		Where("workspace_id = ? AND is_dismissed = ?", workspaceID, false).
		Count(&activeAlerts)

	var overdueForms int64
	config.DB.Model(&models.FormSubmission{}).
		Joins("JOIN form_templates ON form_templates.id = form_submissions.form_template_id").
		Where("form_templates.workspace_id = ? AND form_submissions.status = ?", workspaceID, models.SubmissionOverdue).
		Count(&overdueForms)

	var pendingForms int64
	config.DB.Model(&models.FormSubmission{}).
		Joins("JOIN form_templates ON form_templates.id = form_submissions.form_template_id").
		Where("form_templates.workspace_id = ? AND form_submissions.status = ?", workspaceID, models.SubmissionPending).
		Count(&pendingForms)

	var lowStockItems int64
	config.DB.Model(&models.InventoryItem{}).
		Where("workspace_id = ? AND current_quantity <= low_threshold", workspaceID).
		Count(&lowStockItems)

	c.JSON(http.StatusOK, gin.H{
		"todayBookings":       todayBookings,
		"pendingBookings":     pendingBookings,
		"totalContacts":       totalContacts,
		"unreadConversations": unreadConversations,
		"activeAlerts":        activeAlerts,
		"overdueForms":        overdueForms,
		"pendingForms":        pendingForms,
		"lowStockItems":       lowStockItems,
	})
}

func GetAutomationLogs(c *gin.Context) {
	workspaceID, ok := utils.WorkspaceID(c)
	if !ok {
		return
	}
	workspaceUUID, err := uuid.Parse(workspaceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid workspace ID format")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	logs, err := services.GetAutomationLogs(config.DB, workspaceUUID, limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve automation logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
