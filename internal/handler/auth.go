package handler

import (
	"MediaVault/config"
	"MediaVault/internal/dto"
	"MediaVault/internal/service"
	"MediaVault/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Register creates a new account and signs it in.
func Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, access, refresh, err := service.RegisterUser(req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, dto.AuthResponse{
		UserID:       user.ID,
		Username:     user.UserName,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(config.AppConfig.JWTExpiry),
	})
}

// Login authenticates by username and password.
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, access, refresh, err := service.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, dto.AuthResponse{
		UserID:       user.ID,
		Username:     user.UserName,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(config.AppConfig.JWTExpiry),
	})
}

// Refresh rotates a refresh token into a fresh token pair.
func Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, access, refresh, err := service.RefreshTokens(req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, dto.AuthResponse{
		UserID:       user.ID,
		Username:     user.UserName,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(config.AppConfig.JWTExpiry),
	})
}

// Logout revokes the presented refresh token.
func Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := service.RevokeRefreshToken(req.RefreshToken); err != nil {
		writeServiceError(c, err)
		return
	}
	utils.Success(c, gin.H{"msg": "logged out"})
}
