// Command seed wipes the database and loads a small demo data set:
// one account per role, a hostel, its menu and a review.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hostel-drishti/backend/config"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/repository"
	"hostel-drishti/backend/pkg/database"
	applogger "hostel-drishti/backend/pkg/logger"
)

const demoPassword = "123456"

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo := repository.NewRepository(db)
	if err := seed(ctx, repo, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed completed")
}

func seed(ctx context.Context, repo *repository.Repository, logger *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var hostelID string
	err = repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 1. wipe
		if err := tx.Reset(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		logger.Info("existing data removed")

		// 2. one account per role
		contact := "9988776655"
		dwo := &model.User{Name: "District Officer (DWO)", Email: "dwo@admin.com", PasswordHash: string(hash), Role: model.RoleDWO}
		warden := &model.User{Name: "Ramesh Warden", Email: "warden@hostel.com", PasswordHash: string(hash), Role: model.RoleWarden, ContactNumber: &contact}
		student := &model.User{Name: "Suresh Student", Email: "student@college.com", PasswordHash: string(hash), Role: model.RoleStudent}
		for _, u := range []*model.User{dwo, warden, student} {
			if err := tx.User.Create(ctx, u); err != nil {
				return fmt.Errorf("create user %s: %w", u.Email, err)
			}
		}

		// 3. hostel assigned to the warden
		hostel := &model.Hostel{
			Name:       "BC Welfare Boys Hostel, Ameerpet",
			District:   "Hyderabad",
			State:      "Telangana",
			Address:    "Lane No 5, Satyam Theatre Road, Ameerpet, Hyderabad",
			WardenID:   warden.UserID,
			Latitude:   17.4375,
			Longitude:  78.4482,
			CoverImage: "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?auto=format&fit=crop&w=1351&q=80",
		}
		if err := tx.Hostel.Create(ctx, hostel); err != nil {
			return fmt.Errorf("create hostel: %w", err)
		}
		hostelID = hostel.HostelID

		// 4. menu, normalized to the full week
		week, err := model.NormalizeWeeklyMenu([]model.MenuDay{
			{Day: "Monday", Breakfast: "Idli", Lunch: "Rice & Dal", Dinner: "Veg Curry"},
			{Day: "Tuesday", Breakfast: "Upma", Lunch: "Sambar Rice", Dinner: "Egg Curry"},
		})
		if err != nil {
			return err
		}
		if err := tx.Menu.Upsert(ctx, &model.Menu{HostelID: hostel.HostelID, WeeklyMenu: week, LastUpdated: time.Now()}); err != nil {
			return fmt.Errorf("create menu: %w", err)
		}

		// 5. review by the student
		review := &model.Review{
			HostelID: hostel.HostelID,
			UserID:   student.UserID,
			Rating:   4,
			Comment:  "Food is good but water problem in morning.",
		}
		if err := tx.Review.Create(ctx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 6. rating aggregate comes from the reviews
	stats, err := repo.Hostel.RecomputeRating(ctx, hostelID)
	if err != nil {
		return fmt.Errorf("recompute rating: %w", err)
	}
	logger.Info("demo data loaded",
		zap.String("hostel_id", hostelID),
		zap.Float64("average_rating", stats.AverageRating),
		zap.Int("num_of_reviews", stats.NumOfReviews),
		zap.String("password", demoPassword),
	)
	return nil
}
