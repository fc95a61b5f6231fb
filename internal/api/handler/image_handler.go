package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/pkg/response"
	"hostel-drishti/backend/pkg/storage"
)

// ImageHandler serves images kept in a database-backed store
type ImageHandler struct {
	images storage.Opener
}

// NewImageHandler creates an ImageHandler
func NewImageHandler(images storage.Opener) *ImageHandler {
	return &ImageHandler{images: images}
}

// Get
// GET /api/images/:id
func (h *ImageHandler) Get(c *gin.Context) {
	data, contentType, err := h.images.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.NotFound(c, "Image not found")
			return
		}
		response.Fail(c, err)
		return
	}

	// stored images are immutable
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, contentType, data)
}
