package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

// EscalateThreadRequest represents the request body for escalating a thread
type EscalateThreadRequest struct {
	ToRole string  `json:"to_role" binding:"required"`
	Reason *string `json:"reason"`
}

// EscalateThread handles POST /api/v1/threads/:id/escalate - promotes a
// thread's visibility to an administrative role
func EscalateThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	threadID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req EscalateThreadRequest
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

	escalation, err := services.GetMessaging().Escalations.Escalate(
		threadID,
		callerRole(c, user),
		roles.Resolve(req.ToRole),
		req.Reason,
	)
	if err != nil {
		handleServiceError(c, err, "THREAD_NOT_FOUND")
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    escalation,
	})
}
