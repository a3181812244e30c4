package handlers

import (
	"net/http"

	"burrow/internal/db"
	"burrow/internal/middleware"
	"burrow/internal/models"
	"burrow/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	var notifications []models.Notification
	db.DB.Preload("Actor").Where("user_id = ?", currentUser.ID).
		Order("created_at DESC").Limit(50).Find(&notifications)

	c.JSON(http.StatusOK, notifications)
}

// Read handles POST /api/notifications/:id/read
func (h *NotificationHandler) Read(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)
	id := utils.StringToInt(c.Param("id"))

	db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, currentUser.ID).
		Update("is_read", true)
	c.JSON(http.StatusOK, gin.H{})
}

// ReadAll handles POST /api/notifications/read-all
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	currentUser := middleware.CurrentUser(c)

	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", currentUser.ID, false).
		Update("is_read", true)
	c.JSON(http.StatusOK, gin.H{})
}
