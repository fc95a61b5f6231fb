package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/internal/api/handler"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/pkg/jwt"
	"hostel-drishti/backend/pkg/response"
)

const notAuthorized = "Not authorized to access this route"

// Blacklist revoked token lookup
type Blacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth verifies Authorization: Bearer <token> and puts the caller's id,
// role, token id and expiry on the context.
// blacklist may be nil; a lookup error lets the request through.
func JWTAuth(jwtMgr *jwt.Manager, blacklist Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, notAuthorized)
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, notAuthorized)
			c.Abort()
			return
		}

		role, ok := model.ParseRole(claims.Role)
		if !ok {
			response.Unauthorized(c, notAuthorized)
			c.Abort()
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, notAuthorized)
				c.Abort()
				return
			}
		}

		c.Set(handler.CtxUserID, claims.UserID)
		c.Set(handler.CtxRole, string(role))
		c.Set(handler.CtxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(handler.CtxTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RoleAuth coarse role gate in front of a route group. Ownership rules
// live in the services.
func RoleAuth(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(handler.CtxRole)
		if role == "" {
			response.Unauthorized(c, notAuthorized)
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == string(r) {
				c.Next()
				return
			}
		}

		response.Forbidden(c, fmt.Sprintf("User role %s is not authorized to access this route", role))
		c.Abort()
	}
}
