package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-api/config"
	"blog-api/internal/domain/users"
	"blog-api/internal/infra/cache"
	"blog-api/internal/infra/token"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = "middleware-test-secret"
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	raw, err := token.Issue(users.User{ID: 1, Email: role + "@example.com", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + raw
}

func permissionRouter() *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(), RequirePermission())
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	r.GET("/thing", ok)
	r.POST("/thing", ok)
	r.DELETE("/thing", ok)
	return r
}

func TestPermission(t *testing.T) {
	r := permissionRouter()

	tests := []struct {
		name   string
		method string
		auth   string
		want   int
	}{
		{"anonymous read", http.MethodGet, "", http.StatusOK},
		{"anonymous write", http.MethodPost, "", http.StatusUnauthorized},
		{"user read", http.MethodGet, bearer(t, users.RoleUser), http.StatusOK},
		{"user write", http.MethodPost, bearer(t, users.RoleUser), http.StatusForbidden},
		{"user delete", http.MethodDelete, bearer(t, users.RoleUser), http.StatusForbidden},
		{"admin write", http.MethodPost, bearer(t, users.RoleAdmin), http.StatusOK},
		{"admin delete", http.MethodDelete, bearer(t, users.RoleAdmin), http.StatusOK},
		{"malformed header", http.MethodGet, "Token abc", http.StatusUnauthorized},
		{"invalid token", http.MethodGet, "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/thing", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	r := gin.New()
	r.Use(Authenticate(), RequireAuthenticated())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": IdentityFrom(c).Email})
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want 401", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, users.RoleUser))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "user@example.com") {
		t.Errorf("authenticated: got %d %s", rr.Code, rr.Body.String())
	}
}

func TestSanitizeJSONStrings(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeJSONStrings())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	req := httptest.NewRequest(http.MethodPost, "/echo",
		strings.NewReader(`{"category_name":"<b>R&D</b>","count":3}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"category_name":"R&D"`) {
		t.Errorf("markup should be stripped and entities kept readable, got %s", body)
	}
	if !strings.Contains(body, `"count":3`) {
		t.Errorf("non-string fields must pass through, got %s", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`not json`))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed body: got %d, want 400", rr.Code)
	}
}

func TestInvalidateListingCache(t *testing.T) {
	ctx := context.Background()
	store, _ := cache.NewLRU(8, time.Minute)
	cache.Use(store)
	defer cache.Use(nil)

	r := gin.New()
	r.Use(InvalidateListingCache())
	r.GET("/read", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/fail", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.POST("/write", func(c *gin.Context) { c.Status(http.StatusCreated) })

	cache.Set(ctx, cache.Generation(ctx), "k", []byte("v"))

	for _, path := range []string{"/read", "/fail"} {
		method := http.MethodGet
		if path == "/fail" {
			method = http.MethodPost
		}
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
		if _, ok := cache.Get(ctx, "k"); !ok {
			t.Fatalf("%s should not purge the cache", path)
		}
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/write", nil))
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Error("successful write should purge the cache")
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), RequestLogger())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}
