package dto

import "time"

// CreateReviewRequest POST /reviews/:hostelId
type CreateReviewRequest struct {
	Rating  int    `json:"rating"  binding:"required"`
	Comment string `json:"comment" binding:"required,max=2000"`
}

// ReviewResponse review with its author's name
type ReviewResponse struct {
	ID        string     `json:"_id"`
	Hostel    string     `json:"hostel"`
	User      *UserBrief `json:"user,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"createdAt"`
}
