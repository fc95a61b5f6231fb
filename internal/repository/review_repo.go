package repository

import (
	"context"

	"gorm.io/gorm"

	"hostel-drishti/backend/internal/model"
)

// ReviewRepository review data access
type ReviewRepository interface {
	// Create fails with a unique violation when (hostel, user) already has a review
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	ExistsForUser(ctx context.Context, hostelID, userID string) (bool, error)
	ListByHostel(ctx context.Context, hostelID string) ([]model.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo creates a ReviewRepository
func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Omit("User").Create(review).Error
}

func (r *reviewRepo) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("review_id = ?", id).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) ExistsForUser(ctx context.Context, hostelID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("hostel_id = ? AND user_id = ?", hostelID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepo) ListByHostel(ctx context.Context, hostelID string) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("user_id", "name")
		}).
		Where("hostel_id = ?", hostelID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("review_id = ?", id).Delete(&model.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
