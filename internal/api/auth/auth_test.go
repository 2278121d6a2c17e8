package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blog-api/config"
	"blog-api/database"
	"blog-api/internal/domain/users"
	"blog-api/internal/infra/token"
	"blog-api/internal/testutil"

	"github.com/gin-gonic/gin"
)

func TestLogin(t *testing.T) {
	db := testutil.OpenDB(t)
	if err := database.SeedAdmin(db, "Admin@Example.com", "s3cret-pass"); err != nil {
		t.Fatal(err)
	}
	db.Create(&users.User{Email: "g@example.com", AuthProvider: users.ProviderGoogle, Role: users.RoleUser})

	r := gin.New()
	r.POST("/login", Login)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"valid", map[string]any{"email": "admin@example.com", "password": "s3cret-pass"}, http.StatusOK},
		{"wrong password", map[string]any{"email": "admin@example.com", "password": "nope"}, http.StatusUnauthorized},
		{"unknown user", map[string]any{"email": "who@example.com", "password": "s3cret-pass"}, http.StatusUnauthorized},
		{"google account", map[string]any{"email": "g@example.com", "password": "x"}, http.StatusUnauthorized},
		{"missing password", map[string]any{"email": "admin@example.com"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.Do(t, r, http.MethodPost, "/login", "", tt.body)
			if rr.Code != tt.want {
				t.Fatalf("got %d, want %d (%s)", rr.Code, tt.want, rr.Body.String())
			}
			if tt.want != http.StatusOK {
				return
			}
			var resp struct {
				Token string `json:"token"`
			}
			testutil.Decode(t, rr, &resp)
			id, err := token.Parse(resp.Token)
			if err != nil {
				t.Fatalf("issued token does not parse: %v", err)
			}
			if id.Role != users.RoleAdmin || id.Email != "admin@example.com" {
				t.Errorf("identity: %+v", id)
			}
		})
	}
}

func TestGoogleStart_SetsStateAndRedirects(t *testing.T) {
	config.GOOGLE_CLIENT_ID = "client-id"
	config.GOOGLE_CLIENT_SECRET = "client-secret"
	config.GOOGLE_REDIRECT_URL = "http://localhost:8080/auth/google/callback"
	defer func() {
		config.GOOGLE_CLIENT_ID, config.GOOGLE_CLIENT_SECRET, config.GOOGLE_REDIRECT_URL = "", "", ""
	}()

	r := gin.New()
	r.GET("/auth/google", GoogleStart)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	if rr.Code != http.StatusFound {
		t.Fatalf("status: got %d, want 302", rr.Code)
	}
	loc, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if loc.Host != "accounts.google.com" || loc.Query().Get("client_id") != "client-id" {
		t.Errorf("redirect: %s", loc)
	}

	var state string
	for _, c := range rr.Result().Cookies() {
		if c.Name == stateCookie {
			state = c.Value
		}
	}
	if state == "" || state != loc.Query().Get("state") {
		t.Errorf("cookie state %q must match redirect state %q", state, loc.Query().Get("state"))
	}
}

func TestGoogleCallback_RejectsBadState(t *testing.T) {
	r := gin.New()
	r.GET("/cb", GoogleCallback)

	tests := []struct {
		name   string
		query  string
		cookie string
	}{
		{"missing code", "?state=abc", "abc"},
		{"missing cookie", "?state=abc&code=xyz", ""},
		{"state mismatch", "?state=abc&code=xyz", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cb"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: stateCookie, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("got %d, want 400 (%s)", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestFindOrCreateGoogleUser(t *testing.T) {
	db := testutil.OpenDB(t)
	config.ADMIN_EMAILS = []string{"boss@example.com"}
	defer func() { config.ADMIN_EMAILS = nil }()

	u, err := findOrCreateGoogleUser(db, &googleIDClaims{Sub: "sub-1", Email: "Reader@Example.com", EmailVerified: true})
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != users.RoleUser || u.Email != "reader@example.com" || u.AuthProvider != users.ProviderGoogle {
		t.Errorf("new google user: %+v", u)
	}

	again, err := findOrCreateGoogleUser(db, &googleIDClaims{Sub: "sub-1", Email: "reader@example.com"})
	if err != nil || again.ID != u.ID {
		t.Errorf("second login should reuse the account: %+v %v", again, err)
	}

	// An existing local account is linked and promoted.
	db.Create(&users.User{Email: "boss@example.com", AuthProvider: users.ProviderLocal, Role: users.RoleUser})
	boss, err := findOrCreateGoogleUser(db, &googleIDClaims{Sub: "sub-2", Email: "boss@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if boss.Role != users.RoleAdmin || boss.GoogleSub == nil || *boss.GoogleSub != "sub-2" {
		t.Errorf("linked admin: %+v", boss)
	}
	var stored users.User
	db.First(&stored, boss.ID)
	if stored.Role != users.RoleAdmin || !strings.EqualFold(stored.Email, "boss@example.com") {
		t.Errorf("stored admin: %+v", stored)
	}
}
