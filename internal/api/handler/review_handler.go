package handler

import (
	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/service"
	"hostel-drishti/backend/pkg/response"
)

// ReviewHandler review endpoints
type ReviewHandler struct {
	reviewSvc service.ReviewService
}

// NewReviewHandler creates a ReviewHandler
func NewReviewHandler(reviewSvc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc}
}

// List reviews of a hostel, newest first
// GET /api/reviews/:hostelId
func (h *ReviewHandler) List(c *gin.Context) {
	var uri dto.HostelIDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	reviews, err := h.reviewSvc.ListByHostel(c.Request.Context(), uri.HostelID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OKList(c, reviews, len(reviews))
}

// Create
// POST /api/reviews/:hostelId
func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.HostelIDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	review, err := h.reviewSvc.Create(c.Request.Context(), actor, uri.HostelID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, review)
}

// Delete own review
// DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.reviewSvc.Delete(c.Request.Context(), actor, uri.ID); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{})
}
