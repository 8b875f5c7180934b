package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/auth"
	"github.com/teamboard-dev/teamboard/internal/router"
	"golang.org/x/crypto/bcrypt"
)

var dbCounter atomic.Int64

// setupRouter wires a fresh in-memory database and a test token manager
// behind the real router. Each call gets its own database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", dbCounter.Add(1))

	require.NoError(t, db.ConnectDatabase("sqlite", dsn))
	require.NoError(t, db.MigrateDatabase())

	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return router.NewRouter(tokens, bcrypt.MinCost, nil)
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func signupUser(t *testing.T, r http.Handler, email, name string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    email,
		"name":     name,
		"password": "Str0ng!Pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	token, ok := decodeBody(t, w)["token"].(string)
	require.True(t, ok, "signup response should carry a token")

	return token
}

func createProject(t *testing.T, r http.Handler, token, name string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/projects", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)

	project, ok := decodeBody(t, w)["project"].(map[string]interface{})
	require.True(t, ok)

	return uint(project["id"].(float64))
}

func createTask(t *testing.T, r http.Handler, token, title string, projectID uint) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/tasks", token, gin.H{
		"title":      title,
		"project_id": projectID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	task, ok := decodeBody(t, w)["task"].(map[string]interface{})
	require.True(t, ok)

	return uint(task["id"].(float64))
}
