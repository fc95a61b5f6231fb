package service

import (
	"context"

	"go.uber.org/zap"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/repository"
	pkgerrors "hostel-drishti/backend/pkg/errors"
)

// findHostel resolves a hostel reference; missing -> NotFound
func findHostel(ctx context.Context, repo *repository.Repository, logger *zap.Logger, id string) (*model.Hostel, error) {
	hostel, err := repo.Hostel.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Hostel")
		}
		logger.Error("load hostel failed", zap.String("hostel_id", id), zap.Error(err))
		return nil, err
	}
	return hostel, nil
}

// ── mapping ──

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if u.ContactNumber != nil {
		resp.ContactNumber = *u.ContactNumber
	}
	return resp
}

// toWardenBrief warden as shown on a hostel: name and contact, no email
func toWardenBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	brief := &dto.UserBrief{ID: u.UserID, Name: u.Name}
	if u.ContactNumber != nil {
		brief.ContactNumber = *u.ContactNumber
	}
	return brief
}

func toHostelResponse(h *model.Hostel) dto.HostelResponse {
	return dto.HostelResponse{
		ID:            h.HostelID,
		Name:          h.Name,
		District:      h.District,
		State:         h.State,
		Address:       h.Address,
		Warden:        toWardenBrief(h.Warden),
		Latitude:      h.Latitude,
		Longitude:     h.Longitude,
		CoverImage:    h.CoverImage,
		AverageRating: h.AverageRating,
		NumOfReviews:  h.NumOfReviews,
		CreatedAt:     h.CreatedAt,
	}
}

func toReviewResponse(r *model.Review) dto.ReviewResponse {
	resp := dto.ReviewResponse{
		ID:        r.ReviewID,
		Hostel:    r.HostelID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		resp.User = &dto.UserBrief{ID: r.User.UserID, Name: r.User.Name}
	} else {
		resp.User = &dto.UserBrief{ID: r.UserID}
	}
	return resp
}

func toMenuResponse(m *model.Menu) dto.MenuResponse {
	days := make([]dto.MenuDay, 0, len(m.WeeklyMenu))
	for _, d := range m.WeeklyMenu {
		days = append(days, dto.MenuDay{Day: d.Day, Breakfast: d.Breakfast, Lunch: d.Lunch, Dinner: d.Dinner})
	}
	return dto.MenuResponse{
		ID:          m.MenuID,
		Hostel:      m.HostelID,
		WeeklyMenu:  days,
		LastUpdated: m.LastUpdated,
	}
}

func toDailyPerformanceResponse(d *model.DailyPerformance) dto.DailyPerformanceResponse {
	return dto.DailyPerformanceResponse{
		ID:             d.DailyPerformanceID,
		Hostel:         d.HostelID,
		Warden:         d.WardenID,
		Date:           d.Date.Format(dateLayout),
		StudentCount:   d.StudentCount,
		BreakfastImage: d.BreakfastImage,
		LunchImage:     d.LunchImage,
		DinnerImage:    d.DinnerImage,
		Location:       dto.Location{Lat: d.Latitude, Lng: d.Longitude},
		Remarks:        d.Remarks,
		CreatedAt:      d.CreatedAt,
	}
}

const dateLayout = "2006-01-02"
