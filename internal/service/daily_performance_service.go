package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/policy"
	"hostel-drishti/backend/internal/repository"
	pkgerrors "hostel-drishti/backend/pkg/errors"
	"hostel-drishti/backend/pkg/storage"
)

// MealPhotos the three photos of a daily record
type MealPhotos struct {
	Breakfast *storage.Object
	Lunch     *storage.Object
	Dinner    *storage.Object
}

// DailyPerformanceService per-day warden submissions
type DailyPerformanceService interface {
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateDailyPerformanceRequest, photos MealPhotos) (*dto.DailyPerformanceResponse, error)
	ListByHostel(ctx context.Context, hostelID string) ([]dto.DailyPerformanceResponse, error)
}

type dailyPerformanceService struct {
	repo   *repository.Repository
	images storage.Store
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewDailyPerformanceService creates a DailyPerformanceService; the record
// date is the current day in loc
func NewDailyPerformanceService(repo *repository.Repository, images storage.Store, loc *time.Location, logger *zap.Logger) DailyPerformanceService {
	return &dailyPerformanceService{repo: repo, images: images, loc: loc, now: time.Now, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *dailyPerformanceService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateDailyPerformanceRequest, photos MealPhotos) (*dto.DailyPerformanceResponse, error) {
	// 1. hostel must exist
	hostel, err := findHostel(ctx, s.repo, s.logger, req.Hostel)
	if err != nil {
		return nil, err
	}

	// 2. only the assigned warden
	if err := policy.Authorize(policy.CreateDailyPerformance, actor, policy.Target{WardenID: hostel.WardenID}); err != nil {
		return nil, err
	}

	// 3. body
	if photos.Breakfast == nil || photos.Lunch == nil || photos.Dinner == nil {
		return nil, pkgerrors.Validation("Please upload all 3 meal images")
	}
	if req.StudentCount == nil || *req.StudentCount < 0 {
		return nil, pkgerrors.Validation("Please add the student count")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, pkgerrors.Validation("Location is required")
	}

	// 4. today in the hostel timezone; the (hostel, date) unique index decides
	//    between concurrent submissions, there is no pre-check
	date := s.today()

	// 5. images
	urls := make([]string, 0, 3)
	for _, obj := range []*storage.Object{photos.Breakfast, photos.Lunch, photos.Dinner} {
		url, err := s.images.Save(ctx, *obj)
		if err != nil {
			s.logger.Error("store meal image failed", zap.String("hostel_id", hostel.HostelID), zap.Error(err))
			return nil, err
		}
		urls = append(urls, url)
	}

	// 6. insert
	record := &model.DailyPerformance{
		HostelID:       hostel.HostelID,
		WardenID:       actor.ID,
		Date:           date,
		StudentCount:   *req.StudentCount,
		BreakfastImage: urls[0],
		LunchImage:     urls[1],
		DinnerImage:    urls[2],
		Latitude:       *req.Latitude,
		Longitude:      *req.Longitude,
		Remarks:        strings.TrimSpace(req.Remarks),
	}
	if err := s.repo.DailyPerformance.Create(ctx, record); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, pkgerrors.DuplicateDailyRecord(date.Format(dateLayout))
		}
		s.logger.Error("create daily record failed", zap.String("hostel_id", hostel.HostelID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("daily record submitted",
		zap.String("hostel_id", hostel.HostelID),
		zap.String("date", date.Format(dateLayout)),
	)

	resp := toDailyPerformanceResponse(record)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *dailyPerformanceService) ListByHostel(ctx context.Context, hostelID string) ([]dto.DailyPerformanceResponse, error) {
	if _, err := findHostel(ctx, s.repo, s.logger, hostelID); err != nil {
		return nil, err
	}

	records, err := s.repo.DailyPerformance.ListByHostel(ctx, hostelID)
	if err != nil {
		s.logger.Error("list daily records failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.DailyPerformanceResponse, 0, len(records))
	for i := range records {
		result = append(result, toDailyPerformanceResponse(&records[i]))
	}
	return result, nil
}

// today midnight of the current calendar day in s.loc, expressed as UTC
// so the date column stores that calendar day
func (s *dailyPerformanceService) today() time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
