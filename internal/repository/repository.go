package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository aggregate of every repository
type Repository struct {
	db *gorm.DB

	User             UserRepository
	Hostel           HostelRepository
	Review           ReviewRepository
	Complaint        ComplaintRepository
	Menu             MenuRepository
	DailyPerformance DailyPerformanceRepository
}

// NewRepository creates the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		User:             NewUserRepo(db),
		Hostel:           NewHostelRepo(db),
		Review:           NewReviewRepo(db),
		Complaint:        NewComplaintRepo(db),
		Menu:             NewMenuRepo(db),
		DailyPerformance: NewDailyPerformanceRepo(db),
	}
}

// WithTx an aggregate whose repositories all run on tx
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction runs fn on a transactional aggregate, committing when fn
// returns nil
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// Reset empties every table, dependents first. Used by cmd/seed.
func (r *Repository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Exec("TRUNCATE TABLE daily_performances, menus, complaints, reviews, hostels, users CASCADE").Error
}

// IsUniqueViolation reports whether err is a unique-index violation, either
// translated by gorm or raw from the driver
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNotFound reports whether err is gorm's record-not-found
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
