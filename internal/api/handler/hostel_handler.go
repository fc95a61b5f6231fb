package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/service"
	pkgerrors "hostel-drishti/backend/pkg/errors"
	"hostel-drishti/backend/pkg/response"
	"hostel-drishti/backend/pkg/storage"
)

// HostelHandler hostel endpoints
type HostelHandler struct {
	hostelSvc service.HostelService
	limits    UploadLimits
}

// NewHostelHandler creates a HostelHandler
func NewHostelHandler(hostelSvc service.HostelService, limits UploadLimits) *HostelHandler {
	return &HostelHandler{hostelSvc: hostelSvc, limits: limits}
}

// List
// GET /api/hostels?search=
func (h *HostelHandler) List(c *gin.Context) {
	var req dto.HostelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	hostels, err := h.hostelSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OKList(c, hostels, len(hostels))
}

// Get
// GET /api/hostels/:id
func (h *HostelHandler) Get(c *gin.Context) {
	var uri dto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	hostel, err := h.hostelSvc.Get(c.Request.Context(), uri.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, hostel)
}

// Create multipart: hostel fields plus an optional coverImage file
// POST /api/hostels
func (h *HostelHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateHostelRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	cover, err := h.readCover(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	ctx, cancel := uploadContext(c, h.limits)
	defer cancel()

	hostel, err := h.hostelSvc.Create(ctx, actor, &req, cover)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, hostel)
}

// Update JSON, or multipart when a new coverImage is attached
// PUT /api/hostels/:id
func (h *HostelHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	var req dto.UpdateHostelRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	cover, err := h.readCover(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	ctx, cancel := uploadContext(c, h.limits)
	defer cancel()

	hostel, err := h.hostelSvc.Update(ctx, actor, uri.ID, &req, cover)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, hostel)
}

// Delete removes the hostel and its dependents
// DELETE /api/hostels/:id
func (h *HostelHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.hostelSvc.Delete(c.Request.Context(), actor, uri.ID); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{})
}

// UnassignedWardens
// GET /api/hostels/wardens/unassigned
func (h *HostelHandler) UnassignedWardens(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	wardens, err := h.hostelSvc.ListUnassignedWardens(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OKList(c, wardens, len(wardens))
}

// readCover nil when the request carries no coverImage part
func (h *HostelHandler) readCover(c *gin.Context) (*storage.Object, error) {
	fh, err := c.FormFile("coverImage")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, pkgerrors.Validation("Invalid multipart form")
	}
	obj, err := storage.ReadUpload(fh, storage.FolderHostels, h.limits.MaxFileBytes)
	if err != nil {
		return nil, err
	}
	return &obj, nil
}
