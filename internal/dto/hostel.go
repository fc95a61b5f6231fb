package dto

import "time"

// ── hostel DTOs ──

// HostelListRequest GET /hostels
type HostelListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
}

// CreateHostelRequest multipart form fields of POST /hostels; the cover
// image arrives as the coverImage file part.
type CreateHostelRequest struct {
	Name      string   `form:"name"      binding:"required,max=100"`
	District  string   `form:"district"  binding:"required,max=100"`
	State     string   `form:"state"     binding:"required,max=100"`
	Address   string   `form:"address"   binding:"required"`
	Warden    string   `form:"warden"    binding:"required,uuid"`
	Latitude  *float64 `form:"latitude"  binding:"required,latitude"`
	Longitude *float64 `form:"longitude" binding:"required,longitude"`
}

// UpdateHostelRequest PUT /hostels/:id, every field optional. Accepted as
// JSON or, when a new coverImage is attached, as multipart form fields.
type UpdateHostelRequest struct {
	Name      *string  `json:"name"      form:"name"      binding:"omitempty,min=1,max=100"`
	District  *string  `json:"district"  form:"district"  binding:"omitempty,min=1,max=100"`
	State     *string  `json:"state"     form:"state"     binding:"omitempty,min=1,max=100"`
	Address   *string  `json:"address"   form:"address"   binding:"omitempty,min=1"`
	Warden    *string  `json:"warden"    form:"warden"    binding:"omitempty,uuid"`
	Latitude  *float64 `json:"latitude"  form:"latitude"  binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" form:"longitude" binding:"omitempty,longitude"`
}

// HostelResponse hostel with its warden contact and rating aggregate
type HostelResponse struct {
	ID            string     `json:"_id"`
	Name          string     `json:"name"`
	District      string     `json:"district"`
	State         string     `json:"state"`
	Address       string     `json:"address"`
	Warden        *UserBrief `json:"warden,omitempty"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	CoverImage    string     `json:"coverImage"`
	AverageRating float64    `json:"averageRating"`
	NumOfReviews  int        `json:"numOfReviews"`
	CreatedAt     time.Time  `json:"createdAt"`
}
