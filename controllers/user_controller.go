package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yasmir01/CRM-Platform-clean-sub004/config"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/middleware"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/models"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/roles"
	"github.com/Yasmir01/CRM-Platform-clean-sub004/services"
)

// CreateUser handles POST /api/v1/users - creates the caller's local profile
// from Auth0's /userinfo endpoint. The role is taken from the token's role
// claim, normalized, and stored; an existing profile is updated in place so
// repeat calls stay idempotent.
func CreateUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.PureJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user ID from token",
			},
		})
		return
	}

	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		c.PureJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TOKEN",
				"message": "Access token not found",
			},
		})
		return
	}

	// Fetch the profile fields from Auth0
	cfg := config.GetConfig()
	auth0Service := services.NewAuth0Service(cfg)
	userInfo, err := auth0Service.GetUserInfo(accessToken)
	if err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AUTH0_ERROR",
				"message": "Failed to fetch user information from Auth0",
			},
		})
		return
	}

	if userInfo.Email == "" {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_EMAIL",
				"message": "Email not provided by Auth0",
			},
		})
		return
	}

	if userInfo.Name == "" {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_NAME",
				"message": "Name not provided by Auth0",
			},
		})
		return
	}

	role := roles.ResolveClaim(middleware.GetRawRole(c))
	if role == roles.RoleUnknown {
		role = roles.RoleTenant
	}

	db := config.GetDB()
	var user models.User
	err = db.Where("auth0_id = ?", auth0ID).First(&user).Error
	if err == nil {
		user.Name = userInfo.Name
		user.Email = userInfo.Email
		user.Phone = userInfo.PhoneNumber
		if saveErr := db.Save(&user).Error; saveErr != nil {
			c.PureJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update user profile",
				},
			})
			return
		}
		c.PureJSON(http.StatusOK, gin.H{
			"success": true,
			"data":    user,
		})
		return
	}

	user = models.User{
		Auth0ID: auth0ID,
		Name:    userInfo.Name,
		Email:   userInfo.Email,
		Phone:   userInfo.PhoneNumber,
		Role:    string(role),
	}
	if err := db.Create(&user).Error; err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create user profile",
			},
		})
		return
	}

	c.PureJSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// GetCurrentUser handles GET /api/v1/users/me - returns the caller's profile
func GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
