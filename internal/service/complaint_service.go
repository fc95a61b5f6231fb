package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/policy"
	"hostel-drishti/backend/internal/repository"
	pkgerrors "hostel-drishti/backend/pkg/errors"
)

// ComplaintService complaint intake and resolution.
// Every complaint leaving this service goes through policy.SanitizeComplaint.
type ComplaintService interface {
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateComplaintRequest) (*dto.ComplaintResponse, error)
	ListByHostel(ctx context.Context, actor policy.Actor, hostelID string) ([]dto.ComplaintResponse, error)
	UpdateStatus(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateComplaintStatusRequest) (*dto.ComplaintResponse, error)
}

type complaintService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewComplaintService creates a ComplaintService
func NewComplaintService(repo *repository.Repository, logger *zap.Logger) ComplaintService {
	return &complaintService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *complaintService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateComplaintRequest) (*dto.ComplaintResponse, error) {
	if _, err := findHostel(ctx, s.repo, s.logger, req.Hostel); err != nil {
		return nil, err
	}

	if err := policy.Authorize(policy.CreateComplaint, actor, policy.Target{}); err != nil {
		return nil, err
	}

	category := model.ComplaintCategory(req.Category)
	if !category.Valid() {
		return nil, pkgerrors.Validation("Please select a valid category")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, pkgerrors.Validation("Please add a description")
	}
	if len([]rune(description)) > model.MaxComplaintDescription {
		return nil, pkgerrors.Validation("Description cannot be more than %d characters", model.MaxComplaintDescription)
	}

	complaint := &model.Complaint{
		StudentID:   actor.ID,
		HostelID:    req.Hostel,
		Category:    category,
		Description: description,
		IsAnonymous: req.IsAnonymous,
		Status:      model.StatusOpen,
	}
	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		s.logger.Error("create complaint failed", zap.String("hostel_id", req.Hostel), zap.Error(err))
		return nil, err
	}

	resp := policy.SanitizeComplaint(complaint)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *complaintService) ListByHostel(ctx context.Context, actor policy.Actor, hostelID string) ([]dto.ComplaintResponse, error) {
	if _, err := findHostel(ctx, s.repo, s.logger, hostelID); err != nil {
		return nil, err
	}

	if err := policy.Authorize(policy.ListComplaints, actor, policy.Target{}); err != nil {
		return nil, err
	}

	complaints, err := s.repo.Complaint.ListByHostel(ctx, hostelID)
	if err != nil {
		s.logger.Error("list complaints failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, err
	}
	return policy.SanitizeComplaints(complaints), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *complaintService) UpdateStatus(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateComplaintStatusRequest) (*dto.ComplaintResponse, error) {
	// 1. complaint must exist
	complaint, err := s.loadComplaint(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. policy
	if err := policy.Authorize(policy.UpdateComplaintStatus, actor, policy.Target{}); err != nil {
		return nil, err
	}

	// 3. lifecycle
	to := model.ComplaintStatus(req.Status)
	if !complaint.Status.CanTransition(to) {
		return nil, pkgerrors.Validation("Cannot change complaint status from %s to %s", complaint.Status, to)
	}

	// 4. conditional write; losing a race against another status change is
	//    reported like any other invalid transition
	updated, err := s.repo.Complaint.UpdateStatus(ctx, id, complaint.Status, to)
	if err != nil {
		s.logger.Error("update complaint status failed", zap.String("complaint_id", id), zap.Error(err))
		return nil, err
	}
	if !updated {
		return nil, pkgerrors.Validation("Complaint status has already been changed")
	}

	s.logger.Info("complaint status changed",
		zap.String("complaint_id", id),
		zap.String("status", string(to)),
		zap.String("changed_by", actor.ID),
	)

	complaint, err = s.loadComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := policy.SanitizeComplaint(complaint)
	return &resp, nil
}

func (s *complaintService) loadComplaint(ctx context.Context, id string) (*model.Complaint, error) {
	complaint, err := s.repo.Complaint.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Complaint")
		}
		s.logger.Error("load complaint failed", zap.String("complaint_id", id), zap.Error(err))
		return nil, err
	}
	return complaint, nil
}
