package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "hostel-drishti/backend/pkg/errors"
)

// Response envelope shared with the SPA: {success, count?, data?, error?}
type Response struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TokenResponse auth envelope: {success, token, user}
type TokenResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    interface{} `json:"user"`
}

// ── success ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// OKList 200 with a count alongside the list
func OKList(c *gin.Context, list interface{}, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Count: &count, Data: list})
}

// Token auth success
func Token(c *gin.Context, status int, token string, user interface{}) {
	c.JSON(status, TokenResponse{Success: true, Token: token, User: user})
}

// ── failure ──

// Error generic failure
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{Success: false, Error: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Server error")
}

// StatusOf maps an error kind to its HTTP status
func StatusOf(err error) int {
	switch {
	case errors.Is(err, pkgerrors.ErrValidation),
		errors.Is(err, pkgerrors.ErrDuplicateReview),
		errors.Is(err, pkgerrors.ErrDuplicateDailyRecord):
		return http.StatusBadRequest
	case errors.Is(err, pkgerrors.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, pkgerrors.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, pkgerrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes the envelope for err. Errors outside the domain taxonomy are
// attached to the context for the request logger and answered with a
// generic 500.
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		InternalError(c)
		return
	}
	Error(c, status, err.Error())
}
