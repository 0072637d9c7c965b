package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"roombooking/internal/database"
	"roombooking/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	db, err := database.Connect(filepath.Join(t.TempDir(), "catalog.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(context.Background(), db, log))

	h := NewHandler(NewService(repository.NewRoomRepository(db), log))
	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	h.RegisterAdminRoutes(v1)
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type roomResponse struct {
	Data struct {
		Room struct {
			ID        int64    `json:"id"`
			Code      string   `json:"code"`
			Status    string   `json:"status"`
			Equipment []string `json:"equipment"`
		} `json:"room"`
	} `json:"data"`
}

func TestRoomEndpoints_FullFlow(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/rooms", map[string]any{
		"code": "a-101", "name": "Atlas", "capacity": 8, "equipment": []string{"Projector"},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created roomResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "A-101", created.Data.Room.Code)
	assert.Equal(t, "available", created.Data.Room.Status)
	assert.Equal(t, []string{"projector"}, created.Data.Room.Equipment)

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/rooms", map[string]any{
		"code": "A-101", "name": "Atlas again", "capacity": 2,
	})
	assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodPut, "/api/v1/rooms/1/maintenance", map[string]any{"enabled": true})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var maint roomResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &maint))
	assert.Equal(t, "maintenance", maint.Data.Room.Status)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/rooms", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "A-101")

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/rooms/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRoomEndpoints_Errors(t *testing.T) {
	r := setupTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}{
		{"missing room", http.MethodGet, "/api/v1/rooms/42", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/v1/rooms/abc", nil, http.StatusBadRequest},
		{"invalid room", http.MethodPost, "/api/v1/rooms", map[string]any{"code": "", "name": "x", "capacity": 0}, http.StatusBadRequest},
		{"maintenance without flag", http.MethodPut, "/api/v1/rooms/1/maintenance", map[string]any{}, http.StatusBadRequest},
		{"maintenance on missing room", http.MethodPut, "/api/v1/rooms/42/maintenance", map[string]any{"enabled": true}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSONRequest(r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.code, rr.Code, rr.Body.String())
		})
	}
}
