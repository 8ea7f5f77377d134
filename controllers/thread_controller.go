package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

// CreateThreadRequest represents the request body for starting a conversation
type CreateThreadRequest struct {
	OrganizationID uint   `json:"organization_id" binding:"required"`
	Subject        string `json:"subject" binding:"required"`
	PropertyID     *uint  `json:"property_id"`
	RecipientIDs   []uint `json:"recipient_ids" binding:"required"`
	FirstMessage   string `json:"first_message"`
}

// CreateThread handles POST /api/v1/threads - starts a conversation
func CreateThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateThreadRequest
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

	thread, err := services.GetMessaging().Threads.CreateThread(services.CreateThreadInput{
		OrganizationID: req.OrganizationID,
		Subject:        req.Subject,
		PropertyID:     req.PropertyID,
		CreatorID:      user.ID,
		RecipientIDs:   req.RecipientIDs,
		FirstBody:      req.FirstMessage,
	})
	if err != nil {
		handleServiceError(c, err, "USER_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    thread,
	})
}

// ListThreads handles GET /api/v1/threads - lists threads visible to the caller
func ListThreads(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var organizationID uint
	if raw := c.Query("organization_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.PureJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": "Invalid organization_id parameter",
				},
			})
			return
		}
		organizationID = uint(parsed)
	}

	threads, err := services.GetMessaging().Threads.ListThreads(user, organizationID)
	if err != nil {
		handleServiceError(c, err, "THREAD_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    threads,
	})
}

// GetThread handles GET /api/v1/threads/:id - fetches a thread with its messages
func GetThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}

	thread, messages, err := services.GetMessaging().Threads.GetThread(threadID, user)
	if err != nil {
		handleServiceError(c, err, "THREAD_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"thread":   thread,
			"messages": messages,
		},
	})
}
