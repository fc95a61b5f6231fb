package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-drishti/backend/internal/model"
)

// MenuRepository menu data access, one menu per hostel
type MenuRepository interface {
	GetByHostel(ctx context.Context, hostelID string) (*model.Menu, error)
	// Upsert replaces the hostel's weekly menu, creating it on first write
	Upsert(ctx context.Context, menu *model.Menu) error
	DeleteByHostel(ctx context.Context, hostelID string) (bool, error)
}

type menuRepo struct {
	db *gorm.DB
}

// NewMenuRepo creates a MenuRepository
func NewMenuRepo(db *gorm.DB) MenuRepository {
	return &menuRepo{db: db}
}

func (r *menuRepo) GetByHostel(ctx context.Context, hostelID string) (*model.Menu, error) {
	var menu model.Menu
	err := r.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepo) Upsert(ctx context.Context, menu *model.Menu) error {
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "hostel_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"weekly_menu", "last_updated"}),
			},
			clause.Returning{},
		).
		Create(menu).Error
}

func (r *menuRepo) DeleteByHostel(ctx context.Context, hostelID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("hostel_id = ?", hostelID).Delete(&model.Menu{})
	return result.RowsAffected > 0, result.Error
}
