package handler

import (
	"MediaVault/internal/dto"
	"MediaVault/internal/service"
	"MediaVault/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StartSession opens a new backup session for the authenticated user.
func StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(string)
	session, err := service.StartSession(userID, req.SessionInfo)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, session)
}

// GetSession returns one session, optionally with its media items.
func GetSession(c *gin.Context) {
	withItems, _ := strconv.ParseBool(c.DefaultQuery("with_items", "false"))
	session, err := service.GetSession(c.Param("id"), withItems)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, session)
}

// UpdateSession applies a sparse progress patch to a session.
func UpdateSession(c *gin.Context) {
	var req dto.SessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	session, err := service.UpdateSessionProgress(c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, session)
}

// ListSessions returns the authenticated user's sessions, newest first.
func ListSessions(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	sessions, err := service.ListUserSessions(userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, sessions)
}
