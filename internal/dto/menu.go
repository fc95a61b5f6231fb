package dto

import "time"

// MenuDay one row of the weekly menu
type MenuDay struct {
	Day       string `json:"day"       binding:"required,weekday"`
	Breakfast string `json:"breakfast" binding:"max=200"`
	Lunch     string `json:"lunch"     binding:"max=200"`
	Dinner    string `json:"dinner"    binding:"max=200"`
}

// UpsertMenuRequest POST /menus
type UpsertMenuRequest struct {
	Hostel     string    `json:"hostel"     binding:"required,uuid"`
	WeeklyMenu []MenuDay `json:"weeklyMenu" binding:"required,max=7,dive"`
}

// MenuResponse full seven-day menu, Monday first
type MenuResponse struct {
	ID          string    `json:"_id"`
	Hostel      string    `json:"hostel"`
	WeeklyMenu  []MenuDay `json:"weeklyMenu"`
	LastUpdated time.Time `json:"lastUpdated"`
}
