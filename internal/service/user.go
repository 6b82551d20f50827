package service

import (
	"MediaVault/config"
	"MediaVault/internal/repo"
	"MediaVault/model"
	"MediaVault/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

const refreshTokenKeyPrefix = "refresh:"

// RegisterUser creates a user with hashed credentials and default
// settings, and returns it with a fresh token pair.
func RegisterUser(username, email, password string) (*model.User, string, string, error) {
	var count int64
	if err := repo.Db.Model(&model.User{}).Where("user_name = ?", username).Count(&count).Error; err != nil {
		return nil, "", "", err
	}
	if count > 0 {
		return nil, "", "", fmt.Errorf("%w: username already exists", ErrInvalidRequest)
	}
	if err := repo.Db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", "", err
	}
	if count > 0 {
		return nil, "", "", fmt.Errorf("%w: email already exists", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:          utils.GetToken(),
		UserName:    username,
		Email:       email,
		Password:    utils.GetPwd(password),
		IsActive:    true,
		LastLoginAt: now,
		LastSeen:    now,
		Settings:    model.DefaultUserSettings(),
	}
	if err := repo.Db.Create(user).Error; err != nil {
		return nil, "", "", err
	}

	if err := utils.SendWelcomeMail(user.Email, user.UserName); err != nil &&
		!errors.Is(err, utils.ErrSMTPNotConfigured) {
		log.Printf("welcome mail to %s failed: %v", user.Email, err)
	}

	access, refresh, err := issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Login verifies credentials and returns the user with a token pair.
func Login(username, password string) (*model.User, string, string, error) {
	var user model.User
	if err := repo.Db.Where("user_name = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", fmt.Errorf("%w: invalid username or password", ErrInvalidRequest)
		}
		return nil, "", "", err
	}
	if !utils.CheckPwd(password, user.Password) {
		return nil, "", "", fmt.Errorf("%w: invalid username or password", ErrInvalidRequest)
	}
	if !user.IsActive {
		return nil, "", "", fmt.Errorf("%w: account is deactivated", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	if err := repo.Db.Model(&user).
		Select("last_login_at", "last_seen").
		Updates(map[string]interface{}{"last_login_at": now, "last_seen": now}).Error; err != nil {
		return nil, "", "", err
	}
	user.LastLoginAt = now
	user.LastSeen = now

	access, refresh, err := issueTokens(&user)
	if err != nil {
		return nil, "", "", err
	}
	return &user, access, refresh, nil
}

// issueTokens mints an access token and, when Redis is available, a
// stored refresh token.
func issueTokens(user *model.User) (string, string, error) {
	access, err := utils.GenerateToken(user.ID, user.UserName)
	if err != nil {
		return "", "", err
	}
	refresh := utils.GetToken()
	if repo.Redis != nil {
		key := refreshTokenKeyPrefix + refresh
		if err := repo.Redis.Set(context.Background(), key, user.ID, config.AppConfig.RefreshTokenTTL).Err(); err != nil {
			return "", "", err
		}
	}
	return access, refresh, nil
}

// RefreshTokens rotates a refresh token and mints a new access token.
func RefreshTokens(refreshToken string) (*model.User, string, string, error) {
	if repo.Redis == nil {
		return nil, "", "", fmt.Errorf("%w: refresh token store unavailable", ErrNotImplemented)
	}
	ctx := context.Background()
	key := refreshTokenKeyPrefix + refreshToken
	userID, err := repo.Redis.Get(ctx, key).Result()
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: refresh token invalid or expired", ErrInvalidRequest)
	}
	user, err := GetUserById(userID)
	if err != nil {
		return nil, "", "", err
	}
	repo.Redis.Del(ctx, key)
	access, refresh, err := issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// RevokeRefreshToken drops a stored refresh token.
func RevokeRefreshToken(refreshToken string) error {
	if repo.Redis == nil {
		return nil
	}
	return repo.Redis.Del(context.Background(), refreshTokenKeyPrefix+refreshToken).Err()
}

// GetUserById loads a user.
func GetUserById(userId string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userId)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserSettings replaces a user's settings document.
func UpdateUserSettings(userId string, settings model.UserSettings) (*model.User, error) {
	user, err := GetUserById(userId)
	if err != nil {
		return nil, err
	}
	user.Settings = settings
	user.LastSeen = time.Now().UTC()
	if err := repo.Db.Model(user).
		Select("settings", "last_seen").
		Updates(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
