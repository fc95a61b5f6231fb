package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/policy"
	"hostel-drishti/backend/internal/service"
	"hostel-drishti/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler hostel report downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Complaints
// GET /api/exports/hostels/:id/complaints.xlsx
func (h *ExportHandler) Complaints(c *gin.Context) {
	h.export(c, h.exportSvc.ExportComplaints)
}

// DailyPerformance
// GET /api/exports/hostels/:id/daily-performance.xlsx
func (h *ExportHandler) DailyPerformance(c *gin.Context) {
	h.export(c, h.exportSvc.ExportDailyPerformance)
}

type exportFunc func(ctx context.Context, actor policy.Actor, hostelID string) (*bytes.Buffer, string, error)

func (h *ExportHandler) export(c *gin.Context, fn exportFunc) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	buf, filename, err := fn(c.Request.Context(), actor, uri.ID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	// download headers
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
