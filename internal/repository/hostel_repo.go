package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-drishti/backend/internal/model"
)

// HostelRepository hostel data access
type HostelRepository interface {
	Create(ctx context.Context, hostel *model.Hostel) error
	GetByID(ctx context.Context, id string) (*model.Hostel, error)
	GetByWarden(ctx context.Context, wardenID string) (*model.Hostel, error)
	// List newest first; search matches name, district, state or address
	List(ctx context.Context, search string) ([]model.Hostel, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes the hostel and everything that references it
	Delete(ctx context.Context, id string) error
	// RecomputeRating rewrites the stored aggregate from the hostel's current
	// reviews, serialized per hostel by a row lock
	RecomputeRating(ctx context.Context, hostelID string) (*model.RatingStats, error)
}

type hostelRepo struct {
	db *gorm.DB
}

// NewHostelRepo creates a HostelRepository
func NewHostelRepo(db *gorm.DB) HostelRepository {
	return &hostelRepo{db: db}
}

func (r *hostelRepo) Create(ctx context.Context, hostel *model.Hostel) error {
	return r.db.WithContext(ctx).Omit("Warden").Create(hostel).Error
}

func (r *hostelRepo) GetByID(ctx context.Context, id string) (*model.Hostel, error) {
	var hostel model.Hostel
	err := r.db.WithContext(ctx).
		Preload("Warden").
		Where("hostel_id = ?", id).
		First(&hostel).Error
	if err != nil {
		return nil, err
	}
	return &hostel, nil
}

func (r *hostelRepo) GetByWarden(ctx context.Context, wardenID string) (*model.Hostel, error) {
	var hostel model.Hostel
	err := r.db.WithContext(ctx).
		Where("warden_id = ?", wardenID).
		First(&hostel).Error
	if err != nil {
		return nil, err
	}
	return &hostel, nil
}

func (r *hostelRepo) List(ctx context.Context, search string) ([]model.Hostel, error) {
	var hostels []model.Hostel

	db := r.db.WithContext(ctx).Preload("Warden")
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + escapeLike(s) + "%"
		db = db.Where("name ILIKE ? OR district ILIKE ? OR state ILIKE ? OR address ILIKE ?", like, like, like, like)
	}

	err := db.Order("created_at DESC").Find(&hostels).Error
	return hostels, err
}

func (r *hostelRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = gorm.Expr("CURRENT_TIMESTAMP")
	result := r.db.WithContext(ctx).
		Model(&model.Hostel{}).
		Where("hostel_id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *hostelRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []interface{}{
			&model.DailyPerformance{},
			&model.Menu{},
			&model.Complaint{},
			&model.Review{},
		} {
			if err := tx.Where("hostel_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}

		result := tx.Where("hostel_id = ?", id).Delete(&model.Hostel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *hostelRepo) RecomputeRating(ctx context.Context, hostelID string) (*model.RatingStats, error) {
	var stats model.RatingStats

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. lock the hostel row so concurrent recomputes apply in order
		var locked model.Hostel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("hostel_id").
			Where("hostel_id = ?", hostelID).
			First(&locked).Error; err != nil {
			return err
		}

		// 2. aggregate over the reviews committed so far
		if err := tx.Raw(
			"SELECT COALESCE(AVG(rating), 0)::float8 AS average_rating, COUNT(*) AS num_of_reviews FROM reviews WHERE hostel_id = ?",
			hostelID,
		).Scan(&stats).Error; err != nil {
			return err
		}

		// 3. write back
		return tx.Exec(
			"UPDATE hostels SET average_rating = ?, num_of_reviews = ? WHERE hostel_id = ?",
			stats.AverageRating, stats.NumOfReviews, hostelID,
		).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
