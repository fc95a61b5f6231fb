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
	"hostel-drishti/backend/pkg/storage"
)

// HostelService hostel directory and DWO administration
type HostelService interface {
	List(ctx context.Context, req *dto.HostelListRequest) ([]dto.HostelResponse, error)
	Get(ctx context.Context, id string) (*dto.HostelResponse, error)
	// Create cover is optional
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateHostelRequest, cover *storage.Object) (*dto.HostelResponse, error)
	Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateHostelRequest, cover *storage.Object) (*dto.HostelResponse, error)
	// Delete removes the hostel together with its reviews, complaints, menu and daily records
	Delete(ctx context.Context, actor policy.Actor, id string) error
	ListUnassignedWardens(ctx context.Context, actor policy.Actor) ([]dto.UserResponse, error)
}

type hostelService struct {
	repo   *repository.Repository
	images storage.Store
	logger *zap.Logger
}

// NewHostelService creates a HostelService
func NewHostelService(repo *repository.Repository, images storage.Store, logger *zap.Logger) HostelService {
	return &hostelService{repo: repo, images: images, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *hostelService) List(ctx context.Context, req *dto.HostelListRequest) ([]dto.HostelResponse, error) {
	hostels, err := s.repo.Hostel.List(ctx, req.Search)
	if err != nil {
		s.logger.Error("list hostels failed", zap.String("search", req.Search), zap.Error(err))
		return nil, err
	}

	result := make([]dto.HostelResponse, 0, len(hostels))
	for i := range hostels {
		result = append(result, toHostelResponse(&hostels[i]))
	}
	return result, nil
}

func (s *hostelService) Get(ctx context.Context, id string) (*dto.HostelResponse, error) {
	hostel, err := findHostel(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}
	resp := toHostelResponse(hostel)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *hostelService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateHostelRequest, cover *storage.Object) (*dto.HostelResponse, error) {
	// 1. resolve the warden before the policy check
	warden, err := s.findWarden(ctx, req.Warden)
	if err != nil {
		return nil, err
	}

	// 2. policy
	if err := policy.Authorize(policy.CreateHostel, actor, policy.Target{}); err != nil {
		return nil, err
	}

	// 3. the warden must be free
	if err := s.checkWardenAvailable(ctx, warden, ""); err != nil {
		return nil, err
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, pkgerrors.Validation("latitude and longitude are required")
	}

	hostel := &model.Hostel{
		Name:      strings.TrimSpace(req.Name),
		District:  strings.TrimSpace(req.District),
		State:     strings.TrimSpace(req.State),
		Address:   strings.TrimSpace(req.Address),
		WardenID:  warden.UserID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}

	// 4. cover image
	if cover != nil {
		url, err := s.images.Save(ctx, *cover)
		if err != nil {
			s.logger.Error("store cover image failed", zap.Error(err))
			return nil, err
		}
		hostel.CoverImage = url
	}

	// 5. persist
	if err := s.repo.Hostel.Create(ctx, hostel); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, pkgerrors.Validation("Warden %s is already assigned to a hostel", warden.Name)
		}
		s.logger.Error("create hostel failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("hostel created",
		zap.String("hostel_id", hostel.HostelID),
		zap.String("warden_id", warden.UserID),
		zap.String("created_by", actor.ID),
	)

	return s.Get(ctx, hostel.HostelID)
}

// ────────────────────── Update ──────────────────────

func (s *hostelService) Update(ctx context.Context, actor policy.Actor, id string, req *dto.UpdateHostelRequest, cover *storage.Object) (*dto.HostelResponse, error) {
	hostel, err := findHostel(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}

	var newWarden *model.User
	if req.Warden != nil && *req.Warden != hostel.WardenID {
		if newWarden, err = s.findWarden(ctx, *req.Warden); err != nil {
			return nil, err
		}
	}

	if err := policy.Authorize(policy.UpdateHostel, actor, policy.Target{WardenID: hostel.WardenID}); err != nil {
		return nil, err
	}

	// the rating aggregate is never part of an edit
	fields := make(map[string]interface{})
	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}
	setString("name", req.Name)
	setString("district", req.District)
	setString("state", req.State)
	setString("address", req.Address)
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}

	if newWarden != nil {
		if err := s.checkWardenAvailable(ctx, newWarden, hostel.HostelID); err != nil {
			return nil, err
		}
		fields["warden_id"] = newWarden.UserID
	}

	if cover != nil {
		url, err := s.images.Save(ctx, *cover)
		if err != nil {
			s.logger.Error("store cover image failed", zap.String("hostel_id", id), zap.Error(err))
			return nil, err
		}
		fields["cover_image"] = url
	}

	if len(fields) == 0 {
		resp := toHostelResponse(hostel)
		return &resp, nil
	}

	if err := s.repo.Hostel.Update(ctx, id, fields); err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, pkgerrors.NotFound("Hostel")
		case repository.IsUniqueViolation(err):
			return nil, pkgerrors.Validation("Warden is already assigned to a hostel")
		}
		s.logger.Error("update hostel failed", zap.String("hostel_id", id), zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *hostelService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	hostel, err := findHostel(ctx, s.repo, s.logger, id)
	if err != nil {
		return err
	}

	if err := policy.Authorize(policy.DeleteHostel, actor, policy.Target{WardenID: hostel.WardenID}); err != nil {
		return err
	}

	if err := s.repo.Hostel.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return pkgerrors.NotFound("Hostel")
		}
		s.logger.Error("delete hostel failed", zap.String("hostel_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("hostel deleted", zap.String("hostel_id", id), zap.String("deleted_by", actor.ID))
	return nil
}

// ────────────────────── Wardens ──────────────────────

func (s *hostelService) ListUnassignedWardens(ctx context.Context, actor policy.Actor) ([]dto.UserResponse, error) {
	if err := policy.Authorize(policy.ListUnassignedWardens, actor, policy.Target{}); err != nil {
		return nil, err
	}

	wardens, err := s.repo.User.ListUnassignedWardens(ctx)
	if err != nil {
		s.logger.Error("list unassigned wardens failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(wardens))
	for i := range wardens {
		result = append(result, toUserResponse(&wardens[i]))
	}
	return result, nil
}

// ── helpers ──

func (s *hostelService) findWarden(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Warden")
		}
		s.logger.Error("load warden failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// checkWardenAvailable the user must be a Warden not assigned to any hostel
// other than exceptHostelID
func (s *hostelService) checkWardenAvailable(ctx context.Context, warden *model.User, exceptHostelID string) error {
	if warden.Role != model.RoleWarden {
		return pkgerrors.Validation("%s is not a Warden", warden.Name)
	}

	assigned, err := s.repo.Hostel.GetByWarden(ctx, warden.UserID)
	switch {
	case err == nil && assigned.HostelID != exceptHostelID:
		return pkgerrors.Validation("Warden %s is already assigned to %s", warden.Name, assigned.Name)
	case err != nil && !repository.IsNotFound(err):
		s.logger.Error("lookup warden assignment failed", zap.String("warden_id", warden.UserID), zap.Error(err))
		return err
	}
	return nil
}
