package handler

import (
	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/service"
	"hostel-drishti/backend/pkg/response"
)

// ComplaintHandler complaint endpoints
type ComplaintHandler struct {
	complaintSvc service.ComplaintService
}

// NewComplaintHandler creates a ComplaintHandler
func NewComplaintHandler(complaintSvc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

// Create
// POST /api/complaints
func (h *ComplaintHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	complaint, err := h.complaintSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, complaint)
}

// List complaints of a hostel
// GET /api/complaints/:hostelId
func (h *ComplaintHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.HostelIDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	complaints, err := h.complaintSvc.ListByHostel(c.Request.Context(), actor, uri.HostelID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OKList(c, complaints, len(complaints))
}

// UpdateStatus
// PUT /api/complaints/:id
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	var req dto.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	complaint, err := h.complaintSvc.UpdateStatus(c.Request.Context(), actor, uri.ID, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, complaint)
}
