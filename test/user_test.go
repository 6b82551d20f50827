package test

import (
	"MediaVault/internal/repo"
	"MediaVault/internal/service"
	"MediaVault/model"
	"MediaVault/utils"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	user, access, refresh, err := service.RegisterUser(
		"registration_case", "registration_case@example.com", "password123",
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("token pair not issued")
	}
	if user.Password == "password123" {
		t.Fatal("password stored in plain text")
	}
	if !user.IsActive {
		t.Fatal("new user not active")
	}

	claims, err := utils.VerifyToken(access)
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if claims.UserId != user.ID || claims.Username != user.UserName {
		t.Fatal("access token claims do not match user")
	}

	logged, _, _, err := service.Login("registration_case", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatal("login returned a different user")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	if _, _, _, err := service.RegisterUser("dup_user", "dup1@example.com", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, _, err := service.RegisterUser("dup_user", "dup2@example.com", "password123")
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("err = %v, want invalid request", err)
	}
	_, _, _, err = service.RegisterUser("dup_user2", "dup1@example.com", "password123")
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("err = %v, want invalid request", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	createTestUser(t)
	_, _, _, err := service.Login("nobody_here", "password123")
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("unknown user err = %v, want invalid request", err)
	}

	user := createTestUser(t)
	_, _, _, err = service.Login(user.UserName, "wrong-password")
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("wrong password err = %v, want invalid request", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	user := createTestUser(t)
	if err := repoDeactivate(user.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, _, _, err := service.Login(user.UserName, "password123")
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("err = %v, want invalid request", err)
	}
}

func TestGetUnknownUser(t *testing.T) {
	_, err := service.GetUserById("no-such-id")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestNewUserDefaults(t *testing.T) {
	user := createTestUser(t)

	if !user.Settings.AutoBackupEnabled {
		t.Fatal("auto backup not enabled by default")
	}
	stats, err := service.GetUserStats(user.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalPhotos != 0 || stats.TotalVideos != 0 || stats.TotalSize != 0 {
		t.Fatal("fresh user has nonzero counters")
	}
	if !stats.LastBackupDate.IsZero() {
		t.Fatal("fresh user has a last backup date")
	}
}

func TestUpdateUserSettings(t *testing.T) {
	user := createTestUser(t)

	settings := user.Settings
	settings.BackupOnlyOnWifi = true
	settings.ImageQuality = 60

	updated, err := service.UpdateUserSettings(user.ID, settings)
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if !updated.Settings.BackupOnlyOnWifi || updated.Settings.ImageQuality != 60 {
		t.Fatal("settings patch not applied")
	}

	reloaded, err := service.GetUserById(user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Settings.BackupOnlyOnWifi || reloaded.Settings.ImageQuality != 60 {
		t.Fatal("settings not persisted")
	}
}

func repoDeactivate(userID string) error {
	return repo.Db.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("is_active", false).Error
}
