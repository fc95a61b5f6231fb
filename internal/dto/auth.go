package dto

// ── auth DTOs ──

// RegisterRequest self-registration. Warden and DWO accounts must present
// the matching secret code.
type RegisterRequest struct {
	Name          string `json:"name"          binding:"required,min=2,max=100"`
	Email         string `json:"email"         binding:"required,email,max=255"`
	Password      string `json:"password"      binding:"required,min=6,max=72"`
	Role          string `json:"role"          binding:"omitempty,role"`
	SecretCode    string `json:"secretCode"`
	ContactNumber string `json:"contactNumber" binding:"omitempty,contact_number"`
}

// LoginRequest email + password login
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateContactRequest PUT /auth/me/contact
type UpdateContactRequest struct {
	ContactNumber string `json:"contactNumber" binding:"required,contact_number"`
}

// AuthResult token plus the public view of the user
type AuthResult struct {
	Token string
	User  UserResponse
}
