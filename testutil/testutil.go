// Package testutil builds in-memory stores and requests for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andrewpaige1/quizbot-api/auth"
	"github.com/andrewpaige1/quizbot-api/config"
	"github.com/andrewpaige1/quizbot-api/middleware"
	"github.com/andrewpaige1/quizbot-api/models"
	"github.com/andrewpaige1/quizbot-api/store"
)

const (
	TestAdminEmail    = "admin@example.com"
	TestAdminPassword = "correct horse"
	TestSessionSecret = "test-session-secret"
)

var (
	dbCounter  atomic.Int64
	unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// TestEnvironment returns settings pointing at a private in-memory SQLite
// database for t.
func TestEnvironment(t *testing.T) config.Environment {
	t.Helper()

	name := fmt.Sprintf("%s_%d", unsafeName.ReplaceAllString(t.Name(), "_"), dbCounter.Add(1))
	return config.Environment{
		Port:            8080,
		DatabaseURL:     fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name),
		DatabaseType:    config.DatabaseSQLite,
		AdminEmail:      TestAdminEmail,
		AdminPassword:   TestAdminPassword,
		SessionSecret:   TestSessionSecret,
		SessionTTL:      time.Hour,
		CleanupSchedule: "@every 1h",
		IsDevelopment:   true,
		Domain:          "localhost",
		AllowedOrigins:  []string{"http://localhost:3000"},
	}
}

// SetupTestStore connects a store (schema and bootstrap admin included) and
// disconnects it when the test ends.
func SetupTestStore(t *testing.T) (*store.Store, config.Environment) {
	t.Helper()

	env := TestEnvironment(t)
	s := store.New(config.NewDatabase(env))
	if err := s.Connect(context.Background(), env); err != nil {
		t.Fatalf("Failed to connect test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Disconnect(); err != nil {
			t.Errorf("Failed to disconnect test store: %v", err)
		}
	})
	return s, env
}

// BootstrapAdmin returns the admin created by SetupTestStore.
func BootstrapAdmin(t *testing.T, s *store.Store) models.Admin {
	t.Helper()

	admin, err := s.Admins.GetByEmail(context.Background(), TestAdminEmail)
	if err != nil || admin == nil {
		t.Fatalf("Bootstrap admin missing: %v", err)
	}
	return *admin
}

// SessionCookie opens a session for admin and returns the cookie a browser
// would send back.
func SessionCookie(t *testing.T, s *store.Store, env config.Environment, admin models.Admin) *http.Cookie {
	t.Helper()

	sessionID, err := s.Sessions.Create(context.Background(), admin, env.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	token, err := auth.CreateToken([]byte(env.SessionSecret), sessionID, env.SessionTTL)
	if err != nil {
		t.Fatalf("Failed to sign session token: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

// CreateTestTheme inserts a theme through the accessor.
func CreateTestTheme(t *testing.T, s *store.Store, title string) models.Theme {
	t.Helper()

	theme, err := s.Quizzes.CreateTheme(context.Background(), title)
	if err != nil {
		t.Fatalf("Failed to create theme %q: %v", title, err)
	}
	return *theme
}

// MakeRequest builds a request with an optional JSON body and cookie.
func MakeRequest(method, path string, body interface{}, cookie *http.Cookie) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			json.NewEncoder(&buf).Encode(body)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// AssertStatus checks the response status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Fatalf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// Envelope mirrors the JSON wrapper of every response.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeEnvelope parses the response wrapper and, when v is non-nil, its data.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, v interface{}) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response envelope: %v. Body: %s", err, w.Body.String())
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			t.Fatalf("Failed to decode response data: %v. Data: %s", err, string(env.Data))
		}
	}
	return env
}
