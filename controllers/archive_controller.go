package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

// ArchiveThreadRequest represents the request body for archiving a thread
type ArchiveThreadRequest struct {
	Reason *string `json:"reason"`
}

// ArchiveThread handles POST /api/v1/threads/:id/archive - marks a thread
// archived with an audit reason. Re-archiving updates the existing record.
func ArchiveThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ArchiveThreadRequest
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

	archive, err := services.GetMessaging().Archives.Archive(threadID, callerRole(c, user), user.ID, req.Reason)
	if err != nil {
		handleServiceError(c, err, "THREAD_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    archive,
	})
}
