package handler

import (
	"MediaVault/internal/service"
	"MediaVault/model"
	"MediaVault/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's record.
func GetProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	user, err := service.GetUserById(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, user)
}

// UpdateSettings replaces the authenticated user's settings document.
func UpdateSettings(c *gin.Context) {
	var settings model.UserSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(string)
	user, err := service.UpdateUserSettings(userID, settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, user.Settings)
}
