package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

// PostMessageRequest represents the request body for posting a message
type PostMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// PostMessage handles POST /api/v1/threads/:id/messages - posts a message to a thread
func PostMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	message, err := services.GetMessaging().Messages.PostMessage(threadID, user.ID, req.Body)
	if err != nil {
		handleServiceError(c, err, "THREAD_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// MarkMessageRead handles POST /api/v1/threads/:id/messages/:messageId/read
func MarkMessageRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}

	receipt, err := services.GetMessaging().Reads.MarkRead(threadID, messageID, user.ID)
	if err != nil {
		handleServiceError(c, err, "MESSAGE_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    receipt,
	})
}
