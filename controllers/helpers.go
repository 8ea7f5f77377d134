package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/config"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/middleware"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

// currentUser resolves the authenticated caller to their local user profile.
// Writes the error response and returns false when that fails.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.PureJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.PureJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// callerRole resolves the caller's canonical role, preferring the token's
// role claim and falling back to the stored profile role.
func callerRole(c *gin.Context, user *models.User) roles.Role {
	if role := roles.ResolveClaim(middleware.GetRawRole(c)); role != roles.RoleUnknown {
		return role
	}
	return roles.Resolve(user.Role)
}

// pathID parses a numeric path parameter. Writes the error response and
// returns false when the parameter is missing or not a number.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid " + name + " parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps a service error onto the JSON error envelope.
// notFoundCode names the missing resource, e.g. "THREAD_NOT_FOUND".
func handleServiceError(c *gin.Context, err error, notFoundCode string) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		c.PureJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to perform this action",
			},
		})
	case errors.Is(err, services.ErrInvalidArgument):
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
	case errors.Is(err, services.ErrNotFound):
		c.PureJSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    notFoundCode,
				"message": "The requested resource was not found",
			},
		})
	default:
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "An internal error occurred",
			},
		})
	}
}
