package dto

import "time"

// CreateComplaintRequest POST /complaints
type CreateComplaintRequest struct {
	Hostel      string `json:"hostel"      binding:"required,uuid"`
	Category    string `json:"category"    binding:"required,complaint_category"`
	Description string `json:"description" binding:"required,max=1000"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// UpdateComplaintStatusRequest PUT /complaints/:id
type UpdateComplaintStatusRequest struct {
	Status string `json:"status" binding:"required,complaint_status"`
}

// ComplaintResponse complaint as seen by any caller. Student is the
// anonymous sentinel when the complaint was filed anonymously.
type ComplaintResponse struct {
	ID          string    `json:"_id"`
	Hostel      string    `json:"hostel"`
	Student     UserBrief `json:"student"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IsAnonymous bool      `json:"isAnonymous"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
