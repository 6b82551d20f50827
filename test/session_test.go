package test

import (
	"MediaVault/internal/dto"
	"MediaVault/internal/service"
	"MediaVault/model"
	"errors"
	"testing"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestStartSessionUnknownUser(t *testing.T) {
	_, err := service.StartSession("no-such-user", model.BackupSessionInfo{})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestStartSessionDefaults(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	if session.Status != model.SessionInProgress {
		t.Fatalf("status = %s, want in_progress", session.Status)
	}
	if session.EndTime != nil {
		t.Fatal("end time set on a fresh session")
	}
	if session.StartTime.IsZero() {
		t.Fatal("start time not stamped")
	}
	if session.SessionInfo.DeviceName != "test-device" {
		t.Fatalf("device name = %q", session.SessionInfo.DeviceName)
	}
}

func TestSessionSparsePatch(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	updated, err := service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		ProcessedItems: intPtr(7),
		TotalSize:      int64Ptr(4096),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ProcessedItems != 7 || updated.TotalSize != 4096 {
		t.Fatalf("patched = %d/%d, want 7/4096",
			updated.ProcessedItems, updated.TotalSize)
	}
	// Untouched fields keep their values.
	if updated.FailedBackups != 0 || updated.SkippedItems != 0 {
		t.Fatal("unset fields were overwritten")
	}
	if updated.Status != model.SessionInProgress || updated.EndTime != nil {
		t.Fatal("status changed without a status patch")
	}
}

func TestSessionCompletedStampsEndTime(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	updated, err := service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		Status: strPtr(string(model.SessionCompleted)),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.SessionCompleted {
		t.Fatalf("status = %s, want completed", updated.Status)
	}
	if updated.EndTime == nil {
		t.Fatal("end time not stamped on completion")
	}
}

func TestSessionCancelledLeavesEndTimeEmpty(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	updated, err := service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		Status: strPtr(string(model.SessionCancelled)),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != model.SessionCancelled {
		t.Fatalf("status = %s, want cancelled", updated.Status)
	}
	if updated.EndTime != nil {
		t.Fatal("cancellation stamped an end time")
	}
}

func TestSessionRejectsUnknownStatus(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	_, err := service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		Status: strPtr("paused"),
	})
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("err = %v, want invalid request", err)
	}
}

func TestSessionTerminalStatusFrozen(t *testing.T) {
	user := createTestUser(t)
	session := createTestSession(t, user.ID)

	if _, err := service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		Status: strPtr(string(model.SessionCompleted)),
	}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	_, err := service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		Status: strPtr(string(model.SessionInProgress)),
	})
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("reopen err = %v, want invalid request", err)
	}
	_, err = service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		Status: strPtr(string(model.SessionFailed)),
	})
	if !errors.Is(err, service.ErrInvalidRequest) {
		t.Fatalf("completed->failed err = %v, want invalid request", err)
	}

	// Late counter flushes still land.
	updated, err := service.UpdateSessionProgress(session.ID, &dto.SessionUpdateRequest{
		ProcessedItems: intPtr(3),
	})
	if err != nil {
		t.Fatalf("late counter patch: %v", err)
	}
	if updated.ProcessedItems != 3 || updated.Status != model.SessionCompleted {
		t.Fatalf("late patch = %d/%s, want 3/completed",
			updated.ProcessedItems, updated.Status)
	}
}

func TestUpdateUnknownSession(t *testing.T) {
	_, err := service.UpdateSessionProgress("missing", &dto.SessionUpdateRequest{
		ProcessedItems: intPtr(1),
	})
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestListUserSessionsNewestFirst(t *testing.T) {
	user := createTestUser(t)
	first := createTestSession(t, user.ID)
	second := createTestSession(t, user.ID)

	sessions, err := service.ListUserSessions(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
	ids := map[string]bool{sessions[0].ID: true, sessions[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Fatal("listing misses a created session")
	}
}
