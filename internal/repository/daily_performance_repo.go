package repository

import (
	"context"

	"gorm.io/gorm"

	"hostel-drishti/backend/internal/model"
)

// DailyPerformanceRepository daily record data access
type DailyPerformanceRepository interface {
	// Create fails with a unique violation when (hostel, date) already exists
	Create(ctx context.Context, record *model.DailyPerformance) error
	ListByHostel(ctx context.Context, hostelID string) ([]model.DailyPerformance, error)
}

type dailyPerformanceRepo struct {
	db *gorm.DB
}

// NewDailyPerformanceRepo creates a DailyPerformanceRepository
func NewDailyPerformanceRepo(db *gorm.DB) DailyPerformanceRepository {
	return &dailyPerformanceRepo{db: db}
}

func (r *dailyPerformanceRepo) Create(ctx context.Context, record *model.DailyPerformance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *dailyPerformanceRepo) ListByHostel(ctx context.Context, hostelID string) ([]model.DailyPerformance, error) {
	var records []model.DailyPerformance
	err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}
