package handler

import (
	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/service"
	pkgerrors "hostel-drishti/backend/pkg/errors"
	"hostel-drishti/backend/pkg/response"
	"hostel-drishti/backend/pkg/storage"
)

// DailyPerformanceHandler daily record endpoints
type DailyPerformanceHandler struct {
	dailySvc service.DailyPerformanceService
	limits   UploadLimits
}

// NewDailyPerformanceHandler creates a DailyPerformanceHandler
func NewDailyPerformanceHandler(dailySvc service.DailyPerformanceService, limits UploadLimits) *DailyPerformanceHandler {
	return &DailyPerformanceHandler{dailySvc: dailySvc, limits: limits}
}

// Create multipart: record fields plus breakfast, lunch and dinner photos
// POST /api/daily-performance
func (h *DailyPerformanceHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateDailyPerformanceRequest
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, pkgerrors.Validation("Please upload all 3 meal images"))
		return
	}

	var photos service.MealPhotos
	for _, part := range []struct {
		field string
		dst   **storage.Object
	}{
		{"breakfast", &photos.Breakfast},
		{"lunch", &photos.Lunch},
		{"dinner", &photos.Dinner},
	} {
		files := form.File[part.field]
		if len(files) == 0 {
			response.Fail(c, pkgerrors.Validation("Please upload all 3 meal images"))
			return
		}
		obj, err := storage.ReadUpload(files[0], storage.FolderDaily, h.limits.MaxFileBytes)
		if err != nil {
			response.Fail(c, err)
			return
		}
		*part.dst = &obj
	}

	ctx, cancel := uploadContext(c, h.limits)
	defer cancel()

	record, err := h.dailySvc.Create(ctx, actor, &req, photos)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Created(c, record)
}

// List
// GET /api/daily-performance/:hostelId
func (h *DailyPerformanceHandler) List(c *gin.Context) {
	var uri dto.HostelIDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	records, err := h.dailySvc.ListByHostel(c.Request.Context(), uri.HostelID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OKList(c, records, len(records))
}
