package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/policy"
	pkgerrors "hostel-drishti/backend/pkg/errors"
)

func setupTestComplaintService() (ComplaintService, *testEnv) {
	env := newTestEnv()
	return NewComplaintService(env.repo, zap.NewNop()), env
}

func fileComplaint(t *testing.T, svc ComplaintService, env *testEnv, anonymous bool) *dto.ComplaintResponse {
	t.Helper()
	c, err := svc.Create(context.Background(), env.studentA, &dto.CreateComplaintRequest{
		Hostel:      env.hostelID,
		Category:    "Food",
		Description: "Dal was watery again",
		IsAnonymous: anonymous,
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	return c
}

func assertHidden(t *testing.T, c dto.ComplaintResponse) {
	t.Helper()
	if c.Student.Name != policy.AnonymousName || c.Student.Email != policy.AnonymousEmail || c.Student.ID != "" {
		t.Fatalf("expected anonymous sentinel, got %+v", c.Student)
	}
	body, _ := json.Marshal(c)
	for _, leak := range []string{"student-a", "Asha", "asha.student@example.com"} {
		if strings.Contains(string(body), leak) {
			t.Fatalf("response leaks %q: %s", leak, body)
		}
	}
}

// ── Anonymity ──

func TestComplaintService_AnonymousStaysHiddenThroughResolution(t *testing.T) {
	svc, env := setupTestComplaintService()
	ctx := context.Background()

	created := fileComplaint(t, svc, env, true)
	assertHidden(t, *created)

	list, err := svc.ListByHostel(ctx, env.dwo, env.hostelID)
	if err != nil {
		t.Fatalf("ListByHostel should succeed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 complaint, got %d", len(list))
	}
	assertHidden(t, list[0])

	updated, err := svc.UpdateStatus(ctx, env.dwo, created.ID, &dto.UpdateComplaintStatusRequest{Status: "Resolved"})
	if err != nil {
		t.Fatalf("UpdateStatus should succeed: %v", err)
	}
	if updated.Status != "Resolved" {
		t.Errorf("expected status Resolved, got %s", updated.Status)
	}
	assertHidden(t, *updated)

	list, _ = svc.ListByHostel(ctx, env.w1, env.hostelID)
	if list[0].Status != "Resolved" {
		t.Errorf("expected Resolved after refetch, got %s", list[0].Status)
	}
	assertHidden(t, list[0])
}

func TestComplaintService_NamedComplaintShowsStudent(t *testing.T) {
	svc, env := setupTestComplaintService()

	fileComplaint(t, svc, env, false)

	list, err := svc.ListByHostel(context.Background(), env.w1, env.hostelID)
	if err != nil {
		t.Fatalf("ListByHostel should succeed: %v", err)
	}
	got := list[0].Student
	if got.ID != "student-a" || got.Name != "Asha Student" || got.Email != "asha.student@example.com" {
		t.Errorf("expected the student's identity, got %+v", got)
	}
}

// ── Create ──

func TestComplaintService_Create_OnlyStudents(t *testing.T) {
	svc, env := setupTestComplaintService()

	_, err := svc.Create(context.Background(), env.w1, &dto.CreateComplaintRequest{
		Hostel: env.hostelID, Category: "Hygiene", Description: "x",
	})
	if !errors.Is(err, pkgerrors.ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization, got %v", err)
	}
}

func TestComplaintService_Create_Validation(t *testing.T) {
	svc, env := setupTestComplaintService()

	tests := []struct {
		name string
		req  dto.CreateComplaintRequest
	}{
		{"unknown category", dto.CreateComplaintRequest{Hostel: env.hostelID, Category: "Noise", Description: "loud"}},
		{"blank description", dto.CreateComplaintRequest{Hostel: env.hostelID, Category: "Other", Description: "   "}},
		{"too long", dto.CreateComplaintRequest{Hostel: env.hostelID, Category: "Other", Description: strings.Repeat("a", 1001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), env.studentA, &tt.req)
			if !errors.Is(err, pkgerrors.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestComplaintService_Create_MissingHostel(t *testing.T) {
	svc, env := setupTestComplaintService()

	_, err := svc.Create(context.Background(), env.studentA, &dto.CreateComplaintRequest{
		Hostel: "missing", Category: "Food", Description: "x",
	})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ── UpdateStatus ──

func TestComplaintService_UpdateStatus_Lifecycle(t *testing.T) {
	svc, env := setupTestComplaintService()
	ctx := context.Background()

	c := fileComplaint(t, svc, env, false)

	if _, err := svc.UpdateStatus(ctx, env.w1, c.ID, &dto.UpdateComplaintStatusRequest{Status: "Open"}); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("Open -> Open: expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, env.w1, c.ID, &dto.UpdateComplaintStatusRequest{Status: "Dismissed"}); err != nil {
		t.Fatalf("Open -> Dismissed should succeed: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, env.dwo, c.ID, &dto.UpdateComplaintStatusRequest{Status: "Resolved"}); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("Dismissed -> Resolved: expected ErrValidation, got %v", err)
	}
}

func TestComplaintService_UpdateStatus_StudentForbidden(t *testing.T) {
	svc, env := setupTestComplaintService()

	c := fileComplaint(t, svc, env, false)
	_, err := svc.UpdateStatus(context.Background(), env.studentA, c.ID, &dto.UpdateComplaintStatusRequest{Status: "Resolved"})
	if !errors.Is(err, pkgerrors.ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization, got %v", err)
	}
}

func TestComplaintService_UpdateStatus_NotFoundBeforePolicy(t *testing.T) {
	svc, env := setupTestComplaintService()

	_, err := svc.UpdateStatus(context.Background(), env.studentA, "missing", &dto.UpdateComplaintStatusRequest{Status: "Resolved"})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
