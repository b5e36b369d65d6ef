package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vbforge/projects-tracker/database"
	"github.com/vbforge/projects-tracker/models"
)

var testJWTSecret = []byte("test-secret")

// newTestAPI wires the full route tree over a private in-memory sqlite
// database.
func newTestAPI(t *testing.T) (http.Handler, database.Database) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gormDB))

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := database.New(gormDB)

	router := chi.NewRouter()
	handlers := initializeHandlers(db, testJWTSecret, time.Hour)
	setupRoutes(router, handlers, newAuthMiddleware(testJWTSecret))

	return router, db
}

// registerTestUser creates an account through the public endpoint and returns
// the issued token with the stored user.
func registerTestUser(t *testing.T, api http.Handler, username string) (string, *models.User) {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"correct-horse"}`, username, username)
	rec := doRequest(t, api, http.MethodPost, "/auth/register", strings.NewReader(body), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	decodeJSON(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	return resp.Token, resp.User
}

func doRequest(t *testing.T, api http.Handler, method, target string, body io.Reader, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func doJSONRequest(t *testing.T, api http.Handler, method, target string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return doRequest(t, api, method, target, bytes.NewReader(data), token)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createProjectViaAPI(t *testing.T, api http.Handler, token, title string, status models.ProjectStatus, onGithub bool, tagIDs ...uuid.UUID) *models.Project {
	t.Helper()

	payload := map[string]any{
		"title":    title,
		"status":   status,
		"onGithub": onGithub,
	}
	if len(tagIDs) > 0 {
		payload["tagIds"] = tagIDs
	}
	rec := doJSONRequest(t, api, http.MethodPost, "/projects", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var project models.Project
	decodeJSON(t, rec, &project)
	return &project
}

func createTagViaAPI(t *testing.T, api http.Handler, token, name string) *models.Tag {
	t.Helper()

	rec := doJSONRequest(t, api, http.MethodPost, "/tags", map[string]string{"name": name}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tag models.Tag
	decodeJSON(t, rec, &tag)
	return &tag
}
