package dto

import "time"

// CreateDailyPerformanceRequest multipart form fields of
// POST /daily-performance; the meal photos arrive as the breakfast, lunch
// and dinner file parts.
type CreateDailyPerformanceRequest struct {
	Hostel       string   `form:"hostel"       binding:"required,uuid"`
	StudentCount *int     `form:"studentCount" binding:"required,min=0"`
	Latitude     *float64 `form:"latitude"     binding:"required,latitude"`
	Longitude    *float64 `form:"longitude"    binding:"required,longitude"`
	Remarks      string   `form:"remarks"      binding:"max=1000"`
}

// Location geotag of a submission
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DailyPerformanceResponse one day's record
type DailyPerformanceResponse struct {
	ID             string    `json:"_id"`
	Hostel         string    `json:"hostel"`
	Warden         string    `json:"warden"`
	Date           string    `json:"date"`
	StudentCount   int       `json:"studentCount"`
	BreakfastImage string    `json:"breakfastImage"`
	LunchImage     string    `json:"lunchImage"`
	DinnerImage    string    `json:"dinnerImage"`
	Location       Location  `json:"location"`
	Remarks        string    `json:"remarks,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
