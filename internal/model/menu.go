package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	pkgerrors "hostel-drishti/backend/pkg/errors"
)

// NotSet placeholder for a meal nobody has filled in
const NotSet = "Not Set"

// Weekdays menu day order
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MenuDay one day of the weekly menu
type MenuDay struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// Menu menus table, one per hostel; WeeklyMenu is stored as a JSONB document
type Menu struct {
	MenuID      string                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"menu_id"`
	HostelID    string                       `gorm:"type:uuid;not null"                             json:"hostel_id"`
	WeeklyMenu  datatypes.JSONSlice[MenuDay] `gorm:"type:jsonb;not null"                            json:"weekly_menu"`
	LastUpdated time.Time                    `gorm:"not null"                                       json:"last_updated"`
}

// TableName table name
func (Menu) TableName() string { return "menus" }

// NormalizeWeeklyMenu returns the full Monday..Sunday menu. Days missing
// from days, and blank meals, become NotSet. Unknown or repeated day names
// are rejected.
func NormalizeWeeklyMenu(days []MenuDay) ([]MenuDay, error) {
	byDay := make(map[string]MenuDay, len(days))
	for _, d := range days {
		name := strings.TrimSpace(d.Day)
		if !IsWeekday(name) {
			return nil, pkgerrors.Validation("%q is not a day of the week", d.Day)
		}
		if _, dup := byDay[name]; dup {
			return nil, pkgerrors.Validation("%s appears more than once in the menu", name)
		}
		byDay[name] = d
	}

	out := make([]MenuDay, 0, len(Weekdays))
	for _, name := range Weekdays {
		d := byDay[name]
		out = append(out, MenuDay{
			Day:       name,
			Breakfast: orNotSet(d.Breakfast),
			Lunch:     orNotSet(d.Lunch),
			Dinner:    orNotSet(d.Dinner),
		})
	}
	return out, nil
}

// IsWeekday reports whether s is one of Weekdays
func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if d == s {
			return true
		}
	}
	return false
}

func orNotSet(meal string) string {
	if m := strings.TrimSpace(meal); m != "" {
		return m
	}
	return NotSet
}
