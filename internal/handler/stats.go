package handler

import (
	"MediaVault/internal/service"
	"MediaVault/utils"

	"github.com/gin-gonic/gin"
)

// GetMyStats returns the authenticated user's backup aggregates.
func GetMyStats(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	stats, err := service.GetUserStats(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, stats)
}

// GetSystemStats returns deployment-wide totals.
func GetSystemStats(c *gin.Context) {
	stats, err := service.GetSystemStats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, stats)
}
