package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hostel-drishti/backend/config"
	"hostel-drishti/backend/internal/api/handler"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-at-least-16",
		TokenTTL:  time.Hour,
	})
}

type fakeBlacklist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

type fakeLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	f.calls++
	return f.allowed, f.err
}

func echoIdentity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString(handler.CtxUserID),
		"role":    c.GetString(handler.CtxRole),
		"jti":     c.GetString(handler.CtxTokenID),
		"has_exp": !c.GetTime(handler.CtxTokenExp).IsZero(),
	})
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// ── JWTAuth ──

func TestJWTAuth_MissingOrMalformedHeader(t *testing.T) {
	r := gin.New()
	r.GET("/p", JWTAuth(testJWT(), nil), echoIdentity)

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer "} {
		req := httptest.NewRequest("GET", "/p", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
		if !strings.Contains(w.Body.String(), notAuthorized) {
			t.Errorf("header %q: unexpected body %s", header, w.Body.String())
		}
	}
}

func TestJWTAuth_ValidTokenSetsIdentity(t *testing.T) {
	mgr := testJWT()
	token, err := mgr.GenerateToken("user-1", string(model.RoleWarden))
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/p", JWTAuth(mgr, &fakeBlacklist{}), echoIdentity)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearer(httptest.NewRequest("GET", "/p", nil), token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"user_id":"user-1"`, `"role":"Warden"`, `"has_exp":true`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in %s", want, body)
		}
	}
}

func TestJWTAuth_RejectsForeignSignature(t *testing.T) {
	other := jwt.NewManager(&config.AuthConfig{JWTSecret: "another-secret-16chars", TokenTTL: time.Hour})
	token, _ := other.GenerateToken("user-1", string(model.RoleDWO))

	r := gin.New()
	r.GET("/p", JWTAuth(testJWT(), nil), echoIdentity)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearer(httptest.NewRequest("GET", "/p", nil), token))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_RejectsUnknownRole(t *testing.T) {
	mgr := testJWT()
	token, _ := mgr.GenerateToken("user-1", "Admin")

	r := gin.New()
	r.GET("/p", JWTAuth(mgr, nil), echoIdentity)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, bearer(httptest.NewRequest("GET", "/p", nil), token))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_Blacklist(t *testing.T) {
	mgr := testJWT()
	token, _ := mgr.GenerateToken("user-1", string(model.RoleStudent))
	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		blacklist *fakeBlacklist
		status    int
	}{
		{"revoked", &fakeBlacklist{revoked: map[string]bool{claims.ID: true}}, http.StatusUnauthorized},
		{"not revoked", &fakeBlacklist{}, http.StatusOK},
		{"lookup error", &fakeBlacklist{err: errors.New("redis down")}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/p", JWTAuth(mgr, tt.blacklist), echoIdentity)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, bearer(httptest.NewRequest("GET", "/p", nil), token))

			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}
}

// ── RoleAuth ──

func TestRoleAuth(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(handler.CtxRole, role)
			}
			c.Next()
		}
	}

	tests := []struct {
		role   string
		status int
	}{
		{"DWO", http.StatusOK},
		{"Warden", http.StatusForbidden},
		{"", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		r := gin.New()
		r.GET("/p", withRole(tt.role), RoleAuth(model.RoleDWO), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/p", nil))

		if w.Code != tt.status {
			t.Errorf("role %q: expected %d, got %d", tt.role, tt.status, w.Code)
		}
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter Limiter
		status  int
	}{
		{"no limiter", nil, http.StatusOK},
		{"allowed", &fakeLimiter{allowed: true}, http.StatusOK},
		{"denied", &fakeLimiter{allowed: false}, http.StatusTooManyRequests},
		{"limiter error", &fakeLimiter{err: errors.New("redis down")}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", RateLimit(tt.limiter, 5, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("POST", "/login", nil))

			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}
}

// ── BodyLimit ──

func TestBodyLimit_RejectsDeclaredOversize(t *testing.T) {
	called := false
	r := gin.New()
	r.POST("/p", BodyLimit(8), func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/p", strings.NewReader("0123456789abcdef")))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	r := gin.New()
	r.POST("/p", BodyLimit(1024), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/p", strings.NewReader("{}")))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ── CORS ──

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowOrigins: []string{"http://localhost:3000/"}}))
	r.GET("/p", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/p", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("unexpected allow origin %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("listed origins may send credentials")
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Errorf("unexpected allow methods %q", w.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestCORS_UnknownOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}}))
	r.GET("/p", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin should not be allowed, got %q", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("the request itself still runs, got %d", w.Code)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowOrigins: []string{"*"}}))
	r.GET("/p", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Origin", "http://anything.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "" {
		t.Error("wildcard origins must not be sent credentials")
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/p", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	tests := []struct {
		name   string
		header string
		reused bool
	}{
		{"well formed", "abc-123.x_y", true},
		{"missing", "", false},
		{"too long", strings.Repeat("x", 65), false},
		{"log injection", "abc\nlevel=error", false},
		{"spaces", "abc 123", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/p", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Body.String()
			if got != w.Header().Get("X-Request-ID") {
				t.Errorf("response header %q should echo %q", w.Header().Get("X-Request-ID"), got)
			}
			if tt.reused && got != tt.header {
				t.Errorf("expected %q to be reused, got %q", tt.header, got)
			}
			if !tt.reused && len(got) != 36 {
				t.Errorf("expected a generated uuid, got %q", got)
			}
		})
	}
}

// ── SecurityHeaders ──

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/api/hostels", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/images/:id", func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Status(http.StatusOK)
	})
	r.GET("/uploads/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/hostels", nil))
	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("missing security headers: %v", w.Header())
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("API responses must not be cached, got %q", w.Header().Get("Cache-Control"))
	}
	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS only applies over https")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/images/abc", nil))
	if cc := w.Header().Get("Cache-Control"); !strings.HasPrefix(cc, "public") {
		t.Errorf("image responses keep their cache policy, got %q", cc)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/uploads/hostels/a.png", nil))
	if w.Header().Get("Cache-Control") == "no-store" {
		t.Error("uploaded images may be cached")
	}

	req := httptest.NewRequest("GET", "/api/hostels", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.HasPrefix(w.Header().Get("Strict-Transport-Security"), "max-age=") {
		t.Errorf("expected HSTS behind a TLS proxy, got %q", w.Header().Get("Strict-Transport-Security"))
	}
}
