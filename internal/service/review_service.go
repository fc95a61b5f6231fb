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

// ReviewService reviews and the hostel rating aggregate they drive
type ReviewService interface {
	ListByHostel(ctx context.Context, hostelID string) ([]dto.ReviewResponse, error)
	Create(ctx context.Context, actor policy.Actor, hostelID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
}

type reviewService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReviewService creates a ReviewService
func NewReviewService(repo *repository.Repository, logger *zap.Logger) ReviewService {
	return &reviewService{repo: repo, logger: logger}
}

func (s *reviewService) ListByHostel(ctx context.Context, hostelID string) ([]dto.ReviewResponse, error) {
	if _, err := findHostel(ctx, s.repo, s.logger, hostelID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.ListByHostel(ctx, hostelID)
	if err != nil {
		s.logger.Error("list reviews failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, toReviewResponse(&reviews[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *reviewService) Create(ctx context.Context, actor policy.Actor, hostelID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	// 1. hostel must exist
	if _, err := findHostel(ctx, s.repo, s.logger, hostelID); err != nil {
		return nil, err
	}

	// 2. uniqueness pre-check feeds the policy
	exists, err := s.repo.Review.ExistsForUser(ctx, hostelID, actor.ID)
	if err != nil {
		s.logger.Error("check existing review failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, err
	}
	if err := policy.Authorize(policy.CreateReview, actor, policy.Target{HasReviewed: exists}); err != nil {
		return nil, err
	}

	// 3. body
	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return nil, pkgerrors.Validation("Please add a rating between %d and %d", model.MinRating, model.MaxRating)
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, pkgerrors.Validation("Please add some text")
	}

	// 4. insert; the unique index settles concurrent attempts
	review := &model.Review{
		HostelID: hostelID,
		UserID:   actor.ID,
		Rating:   req.Rating,
		Comment:  comment,
	}
	if err := s.repo.Review.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, pkgerrors.DuplicateReview()
		}
		s.logger.Error("create review failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, err
	}

	// 5. aggregate
	s.recomputeRating(ctx, hostelID)

	resp := toReviewResponse(review)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *reviewService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	review, err := s.repo.Review.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return pkgerrors.NotFound("Review")
		}
		s.logger.Error("load review failed", zap.String("review_id", id), zap.Error(err))
		return err
	}

	if err := policy.Authorize(policy.DeleteReview, actor, policy.Target{OwnerID: review.UserID}); err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return pkgerrors.NotFound("Review")
		}
		s.logger.Error("delete review failed", zap.String("review_id", id), zap.Error(err))
		return err
	}

	s.recomputeRating(ctx, review.HostelID)
	return nil
}

// recomputeRating re-derives the hostel aggregate from its reviews.
// A failure leaves the aggregate stale until the next review change; the
// triggering write is not rolled back.
func (s *reviewService) recomputeRating(ctx context.Context, hostelID string) {
	stats, err := s.repo.Hostel.RecomputeRating(ctx, hostelID)
	if err != nil {
		s.logger.Error("rating recompute failed, aggregate is stale",
			zap.String("hostel_id", hostelID),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("rating recomputed",
		zap.String("hostel_id", hostelID),
		zap.Float64("average_rating", stats.AverageRating),
		zap.Int("num_of_reviews", stats.NumOfReviews),
	)
}
