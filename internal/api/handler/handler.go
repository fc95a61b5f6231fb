package handler

import (
	"time"

	"hostel-drishti/backend/internal/service"
	"hostel-drishti/backend/pkg/storage"
)

// UploadLimits limits applied to multipart image parts
type UploadLimits struct {
	MaxFileBytes int64
	Timeout      time.Duration // bounds the image store round-trips of one request; 0 = none
}

// Handler aggregate of every handler
type Handler struct {
	Auth             *AuthHandler
	Hostel           *HostelHandler
	Review           *ReviewHandler
	Complaint        *ComplaintHandler
	Menu             *MenuHandler
	DailyPerformance *DailyPerformanceHandler
	Export           *ExportHandler
	Image            *ImageHandler // nil unless images are served from GridFS
}

// NewHandler creates the aggregate; images may be nil
func NewHandler(svc *service.Service, limits UploadLimits, images storage.Opener) *Handler {
	h := &Handler{
		Auth:             NewAuthHandler(svc.Auth),
		Hostel:           NewHostelHandler(svc.Hostel, limits),
		Review:           NewReviewHandler(svc.Review),
		Complaint:        NewComplaintHandler(svc.Complaint),
		Menu:             NewMenuHandler(svc.Menu),
		DailyPerformance: NewDailyPerformanceHandler(svc.DailyPerformance, limits),
		Export:           NewExportHandler(svc.Export),
	}
	if images != nil {
		h.Image = NewImageHandler(images)
	}
	return h
}
