package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

// ListNotifications handles GET /api/v1/notifications - lists the caller's
// notifications, newest first
func ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	notifications, err := services.GetMessaging().Repo.ListNotificationsForUser(user.ID)
	if err != nil {
		handleServiceError(c, err, "NOTIFICATION_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read - flips an
// unread in-app notification to read
func MarkNotificationRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.GetMessaging().Repo.MarkNotificationRead(notificationID, user.ID); err != nil {
		handleServiceError(c, err, "NOTIFICATION_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
	})
}
