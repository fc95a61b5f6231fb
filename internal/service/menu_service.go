package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/policy"
	"hostel-drishti/backend/internal/repository"
	pkgerrors "hostel-drishti/backend/pkg/errors"
)

// MenuService the weekly mess menu, one per hostel
type MenuService interface {
	Get(ctx context.Context, hostelID string) (*dto.MenuResponse, error)
	Upsert(ctx context.Context, actor policy.Actor, req *dto.UpsertMenuRequest) (*dto.MenuResponse, error)
	Delete(ctx context.Context, actor policy.Actor, hostelID string) error
	// Calendar renders the menu as an iCalendar feed, returning the body and
	// a suggested filename
	Calendar(ctx context.Context, hostelID string) ([]byte, string, error)
}

type menuService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewMenuService creates a MenuService; loc is the timezone meals are served in
func NewMenuService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) MenuService {
	return &menuService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *menuService) Get(ctx context.Context, hostelID string) (*dto.MenuResponse, error) {
	menu, err := s.loadMenu(ctx, hostelID)
	if err != nil {
		return nil, err
	}
	resp := toMenuResponse(menu)
	return &resp, nil
}

// ────────────────────── Upsert ──────────────────────

func (s *menuService) Upsert(ctx context.Context, actor policy.Actor, req *dto.UpsertMenuRequest) (*dto.MenuResponse, error) {
	// 1. hostel must exist
	hostel, err := findHostel(ctx, s.repo, s.logger, req.Hostel)
	if err != nil {
		return nil, err
	}

	// 2. only the assigned warden
	if err := policy.Authorize(policy.UpsertMenu, actor, policy.Target{WardenID: hostel.WardenID}); err != nil {
		return nil, err
	}

	// 3. always store the full week
	days := make([]model.MenuDay, 0, len(req.WeeklyMenu))
	for _, d := range req.WeeklyMenu {
		days = append(days, model.MenuDay{Day: d.Day, Breakfast: d.Breakfast, Lunch: d.Lunch, Dinner: d.Dinner})
	}
	week, err := model.NormalizeWeeklyMenu(days)
	if err != nil {
		return nil, err
	}

	// 4. one menu per hostel
	menu := &model.Menu{
		HostelID:    hostel.HostelID,
		WeeklyMenu:  week,
		LastUpdated: s.now(),
	}
	if err := s.repo.Menu.Upsert(ctx, menu); err != nil {
		s.logger.Error("upsert menu failed", zap.String("hostel_id", hostel.HostelID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("menu updated", zap.String("hostel_id", hostel.HostelID), zap.String("warden_id", actor.ID))

	resp := toMenuResponse(menu)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *menuService) Delete(ctx context.Context, actor policy.Actor, hostelID string) error {
	hostel, err := findHostel(ctx, s.repo, s.logger, hostelID)
	if err != nil {
		return err
	}

	if err := policy.Authorize(policy.DeleteMenu, actor, policy.Target{WardenID: hostel.WardenID}); err != nil {
		return err
	}

	deleted, err := s.repo.Menu.DeleteByHostel(ctx, hostelID)
	if err != nil {
		s.logger.Error("delete menu failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return err
	}
	if !deleted {
		return pkgerrors.NotFound("Menu")
	}
	return nil
}

// ────────────────────── Calendar ──────────────────────

// mealSlot local serving window of a meal
type mealSlot struct {
	name          string
	startHour     int
	endHour       int
	dish          func(model.MenuDay) string
	summaryPrefix string
}

var mealSlots = []mealSlot{
	{name: "breakfast", startHour: 8, endHour: 9, summaryPrefix: "Breakfast", dish: func(d model.MenuDay) string { return d.Breakfast }},
	{name: "lunch", startHour: 13, endHour: 14, summaryPrefix: "Lunch", dish: func(d model.MenuDay) string { return d.Lunch }},
	{name: "dinner", startHour: 20, endHour: 21, summaryPrefix: "Dinner", dish: func(d model.MenuDay) string { return d.Dinner }},
}

func (s *menuService) Calendar(ctx context.Context, hostelID string) ([]byte, string, error) {
	hostel, err := findHostel(ctx, s.repo, s.logger, hostelID)
	if err != nil {
		return nil, "", err
	}
	menu, err := s.loadMenu(ctx, hostelID)
	if err != nil {
		return nil, "", err
	}

	now := s.now().In(s.loc)
	monday := startOfWeek(now)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//HostelDrishti//Mess Menu//EN")
	cal.SetXWRCalName(hostel.Name + " mess menu")
	cal.SetXWRTimezone(s.loc.String())

	for i, name := range model.Weekdays {
		day := findMenuDay(menu.WeeklyMenu, name)
		date := monday.AddDate(0, 0, i)

		for _, slot := range mealSlots {
			dish := slot.dish(day)
			if dish == "" || dish == model.NotSet {
				continue
			}
			start := time.Date(date.Year(), date.Month(), date.Day(), slot.startHour, 0, 0, 0, s.loc)
			end := time.Date(date.Year(), date.Month(), date.Day(), slot.endHour, 0, 0, 0, s.loc)

			event := cal.AddEvent(fmt.Sprintf("%s-%s-%s@hostel-drishti", hostel.HostelID, name, slot.name))
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(fmt.Sprintf("%s: %s", slot.summaryPrefix, dish))
			event.SetLocation(hostel.Name)
			event.AddRrule("FREQ=WEEKLY")
		}
	}

	return []byte(cal.Serialize()), fmt.Sprintf("menu_%s.ics", hostel.HostelID), nil
}

// ── helpers ──

func (s *menuService) loadMenu(ctx context.Context, hostelID string) (*model.Menu, error) {
	menu, err := s.repo.Menu.GetByHostel(ctx, hostelID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Menu")
		}
		s.logger.Error("load menu failed", zap.String("hostel_id", hostelID), zap.Error(err))
		return nil, err
	}
	return menu, nil
}

func findMenuDay(week []model.MenuDay, name string) model.MenuDay {
	for _, d := range week {
		if d.Day == name {
			return d
		}
	}
	return model.MenuDay{Day: name}
}

// startOfWeek midnight of the Monday on or before t, in t's location
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}
