package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hostel-drishti/backend/config"
	"hostel-drishti/backend/internal/repository"
	"hostel-drishti/backend/pkg/jwt"
	"hostel-drishti/backend/pkg/storage"
)

// TokenBlacklist revoked token ids; nil disables logout revocation
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Service aggregate of every service
type Service struct {
	Auth             AuthService
	Hostel           HostelService
	Review           ReviewService
	Complaint        ComplaintService
	Menu             MenuService
	DailyPerformance DailyPerformanceService
	Export           ExportService
}

// NewService creates the aggregate
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	images storage.Store,
	logger *zap.Logger,
) *Service {
	loc, err := cfg.Menu.Location()
	if err != nil {
		logger.Warn("invalid menu timezone, using UTC", zap.String("timezone", cfg.Menu.Timezone), zap.Error(err))
		loc = time.UTC
	}

	return &Service{
		Auth:             NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Hostel:           NewHostelService(repo, images, logger),
		Review:           NewReviewService(repo, logger),
		Complaint:        NewComplaintService(repo, logger),
		Menu:             NewMenuService(repo, loc, logger),
		DailyPerformance: NewDailyPerformanceService(repo, images, loc, logger),
		Export:           NewExportService(repo, logger),
	}
}
