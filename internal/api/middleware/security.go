package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// paths whose responses may be cached by the browser or a CDN
var cacheablePrefixes = []string{"/uploads/", "/api/images/"}

// SecurityHeaders hardening headers for the JSON API and the image routes.
// API responses carry personal data (contacts, complaints) and are never cached.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		if !isCacheable(c.Request.URL.Path) {
			h.Set("Cache-Control", "no-store")
		}

		c.Next()
	}
}

func isCacheable(path string) bool {
	for _, p := range cacheablePrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
