package repository

import (
	"context"

	"gorm.io/gorm"

	"hostel-drishti/backend/internal/model"
)

// ComplaintRepository complaint data access.
// Results carry the full Student relation; callers must pass them through
// the visibility filter before they leave the server.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	GetByID(ctx context.Context, id string) (*model.Complaint, error)
	ListByHostel(ctx context.Context, hostelID string) ([]model.Complaint, error)
	// UpdateStatus moves from -> to; false when the stored status is no longer from
	UpdateStatus(ctx context.Context, id string, from, to model.ComplaintStatus) (bool, error)
}

type complaintRepo struct {
	db *gorm.DB
}

// NewComplaintRepo creates a ComplaintRepository
func NewComplaintRepo(db *gorm.DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

func (r *complaintRepo) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Omit("Student").Create(complaint).Error
}

func (r *complaintRepo) GetByID(ctx context.Context, id string) (*model.Complaint, error) {
	var complaint model.Complaint
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("complaint_id = ?", id).
		First(&complaint).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepo) ListByHostel(ctx context.Context, hostelID string) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("hostel_id = ?", hostelID).
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepo) UpdateStatus(ctx context.Context, id string, from, to model.ComplaintStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("complaint_id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
