package dto

// ── shared query params ──

// IDParam path id binding
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// HostelIDParam path hostelId binding
type HostelIDParam struct {
	HostelID string `uri:"hostelId" binding:"required,uuid"`
}
