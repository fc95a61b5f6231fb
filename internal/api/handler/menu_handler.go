package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/service"
	"hostel-drishti/backend/pkg/response"
)

// MenuHandler menu endpoints
type MenuHandler struct {
	menuSvc service.MenuService
}

// NewMenuHandler creates a MenuHandler
func NewMenuHandler(menuSvc service.MenuService) *MenuHandler {
	return &MenuHandler{menuSvc: menuSvc}
}

// Get
// GET /api/menus/:hostelId
func (h *MenuHandler) Get(c *gin.Context) {
	var uri dto.HostelIDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	menu, err := h.menuSvc.Get(c.Request.Context(), uri.HostelID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, menu)
}

// Upsert creates or replaces the weekly menu
// POST /api/menus
func (h *MenuHandler) Upsert(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpsertMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	menu, err := h.menuSvc.Upsert(c.Request.Context(), actor, &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, menu)
}

// Delete
// DELETE /api/menus/:hostelId
func (h *MenuHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var uri dto.HostelIDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.menuSvc.Delete(c.Request.Context(), actor, uri.HostelID); err != nil {
		response.Fail(c, err)
		return
	}

	response.OK(c, gin.H{})
}

// Calendar iCalendar feed of the weekly menu
// GET /api/menus/:hostelId/calendar.ics
func (h *MenuHandler) Calendar(c *gin.Context) {
	var uri dto.HostelIDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}

	body, filename, err := h.menuSvc.Calendar(c.Request.Context(), uri.HostelID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}
