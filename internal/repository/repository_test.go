package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hostel-drishti/backend/internal/model"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock, gdb
}

// ── RecomputeRating ──

func TestRecomputeRating_WritesAggregate(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewHostelRepo(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "hostel_id" FROM "hostels" WHERE hostel_id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"hostel_id"}).AddRow("h-1"))
	mock.ExpectQuery(`SELECT COALESCE\(AVG\(rating\), 0\)::float8 AS average_rating, COUNT\(\*\) AS num_of_reviews FROM reviews`).
		WithArgs("h-1").
		WillReturnRows(sqlmock.NewRows([]string{"average_rating", "num_of_reviews"}).AddRow(3.0, 2))
	mock.ExpectExec(`UPDATE hostels SET average_rating = \$1, num_of_reviews = \$2 WHERE hostel_id = \$3`).
		WithArgs(3.0, 2, "h-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stats, err := repo.RecomputeRating(context.Background(), "h-1")

	require.NoError(t, err)
	assert.Equal(t, 3.0, stats.AverageRating)
	assert.Equal(t, 2, stats.NumOfReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecomputeRating_NoReviewsResetsToZero(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewHostelRepo(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"hostel_id"}).AddRow("h-1"))
	mock.ExpectQuery(`FROM reviews`).
		WithArgs("h-1").
		WillReturnRows(sqlmock.NewRows([]string{"average_rating", "num_of_reviews"}).AddRow(0.0, 0))
	mock.ExpectExec(`UPDATE hostels SET average_rating`).
		WithArgs(0.0, 0, "h-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stats, err := repo.RecomputeRating(context.Background(), "h-1")

	require.NoError(t, err)
	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.NumOfReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecomputeRating_MissingHostelRollsBack(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewHostelRepo(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"hostel_id"}))
	mock.ExpectRollback()

	_, err := repo.RecomputeRating(context.Background(), "missing")

	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── hostel cascade delete ──

func TestHostelDelete_CascadesInOneTransaction(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewHostelRepo(gdb)

	mock.ExpectBegin()
	for _, table := range []string{"daily_performances", "menus", "complaints", "reviews"} {
		mock.ExpectExec(fmt.Sprintf(`DELETE FROM "%s" WHERE hostel_id = \$1`, table)).
			WithArgs("h-1").
			WillReturnResult(sqlmock.NewResult(0, 3))
	}
	mock.ExpectExec(`DELETE FROM "hostels" WHERE hostel_id = \$1`).
		WithArgs("h-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "h-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHostelDelete_MissingHostelRollsBack(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewHostelRepo(gdb)

	mock.ExpectBegin()
	for range 4 {
		mock.ExpectExec(`DELETE FROM`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`DELETE FROM "hostels"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── complaints ──

func TestComplaintUpdateStatus_StaleStatusAffectsNothing(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewComplaintRepo(gdb)

	mock.ExpectExec(`UPDATE "complaints" SET .* WHERE complaint_id = .* AND status = `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdateStatus(context.Background(), "c-1", model.StatusOpen, model.StatusResolved)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintUpdateStatus_Applied(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewComplaintRepo(gdb)

	mock.ExpectExec(`UPDATE "complaints" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateStatus(context.Background(), "c-1", model.StatusOpen, model.StatusDismissed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── users ──

func TestListUnassignedWardens(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewUserRepo(gdb)

	rows := sqlmock.NewRows([]string{"user_id", "name", "email", "role"}).
		AddRow("w-2", "Lakshmi", "lakshmi@example.com", "Warden")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE role = \$1 AND NOT EXISTS`).
		WithArgs(model.RoleWarden).
		WillReturnRows(rows)

	wardens, err := repo.ListUnassignedWardens(context.Background())
	require.NoError(t, err)
	require.Len(t, wardens, 1)
	assert.Equal(t, "w-2", wardens[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContact_UnknownUser(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewUserRepo(gdb)

	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateContact(context.Background(), "ghost", "9988776655")
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── menus ──

func TestMenuDeleteByHostel(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	repo := NewMenuRepo(gdb)

	mock.ExpectExec(`DELETE FROM "menus" WHERE hostel_id = \$1`).
		WithArgs("h-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteByHostel(context.Background(), "h-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── helpers ──

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "uq_reviews_hostel_user"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
