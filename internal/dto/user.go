package dto

import "time"

// UserResponse public view of an account (never the password hash)
type UserResponse struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserBrief embedded user reference. ID is empty for the anonymous sentinel.
type UserBrief struct {
	ID            string `json:"_id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
}
