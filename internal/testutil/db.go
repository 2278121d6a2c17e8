// Package testutil wires an in-memory database and a test router for
// handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"blog-api/config"
	"blog-api/database"
	"blog-api/internal/domain/users"
	"blog-api/internal/infra/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const Secret = "handler-test-secret"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// OpenDB migrates a fresh in-memory sqlite database, installs it as
// database.DB and restores the previous value when the test ends.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWT_SECRET = Secret

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on",
		unsafeName.ReplaceAllString(t.Name(), "_"))
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// A shared in-memory database disappears with its last connection,
	// and sqlite allows one writer at a time.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

// Bearer returns an Authorization header value for a user with role.
func Bearer(t *testing.T, role string) string {
	t.Helper()
	raw, err := token.Issue(users.User{ID: 1, Email: role + "@example.com", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + raw
}

// Do sends body (marshalled to JSON unless nil) to h and returns the recorder.
func Do(t *testing.T, h http.Handler, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// Decode unmarshals the recorded body into v.
func Decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}
