package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/policy"
	"hostel-drishti/backend/pkg/response"
	"hostel-drishti/backend/pkg/validation"
)

// context keys written by middleware.JWTAuth
const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxTokenID  = "jti"
	CtxTokenExp = "token_exp"
)

const notAuthorized = "Not authorized to access this route"

// MustGetUserID extracts user_id set by the JWT middleware.
// Writes 401 and returns false when it is missing; callers return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(CtxUserID)
	if s == "" {
		response.Unauthorized(c, notAuthorized)
		return "", false
	}
	return s, true
}

// MustGetActor the authenticated requester as the access policy sees it
func MustGetActor(c *gin.Context) (policy.Actor, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return policy.Actor{}, false
	}
	role, ok := model.ParseRole(c.GetString(CtxRole))
	if !ok {
		response.Unauthorized(c, notAuthorized)
		return policy.Actor{}, false
	}
	return policy.Actor{ID: id, Role: role}, true
}

// tokenInfo jti and expiry of the request's token
func tokenInfo(c *gin.Context) (string, time.Time) {
	return c.GetString(CtxTokenID), c.GetTime(CtxTokenExp)
}

// bindFailed answers a binding/validation error with a 400
func bindFailed(c *gin.Context, err error) {
	response.BadRequest(c, validation.Message(err))
}

// uploadContext bounds image store work when a timeout is configured
func uploadContext(c *gin.Context, limits UploadLimits) (context.Context, context.CancelFunc) {
	if limits.Timeout > 0 {
		return context.WithTimeout(c.Request.Context(), limits.Timeout)
	}
	return context.WithCancel(c.Request.Context())
}
