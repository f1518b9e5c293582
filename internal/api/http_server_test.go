package api

import (
	"bytes"
	"encoding/json"
	"journal/internal/apperr"
	"journal/internal/config"
	"journal/internal/entity/dto"
	"journal/internal/export"
	"journal/internal/model"
	"journal/internal/storage"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, withStorage bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := config.Config{
		DBType:         model.DBTypeSQLite,
		DBPath:         filepath.Join(dir, "journal.db"),
		RequestTimeout: 2 * time.Second,
		ExportPrefix:   "exports",
	}
	repo, err := model.NewRepositoryFactory().CreateRepository(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	var store storage.Storage
	if withStorage {
		store, err = storage.NewLocalStorage(filepath.Join(dir, "exports"))
		require.NoError(t, err)
	}

	handler, err := NewHTTPHandler(cfg, repo, store)
	require.NoError(t, err)

	r := gin.New()
	handler.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createTag(t *testing.T, r http.Handler, name string) dto.Tag {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/tags", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TagDetailResponse](t, w).Tag
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, false)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEntryLifecycle(t *testing.T) {
	r := newTestRouter(t, false)
	work := createTag(t, r, "work")

	w := doJSON(t, r, http.MethodPost, "/api/mood", gin.H{
		"content":  "tired but fine",
		"tags":     []string{work.ID},
		"datetime": "2020-10-25T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.EntryDetailResponse](t, w).Entry
	assert.Equal(t, "mood", string(created.Type))
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "work", created.Tags[0].Name)

	w = doJSON(t, r, http.MethodGet, "/api/mood?date=2020-10-25", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[dto.EntryListResponse](t, w).Entries
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = doJSON(t, r, http.MethodGet, "/api/journal?date=2020-10-25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.EntryListResponse](t, w).Entries)

	w = doJSON(t, r, http.MethodPatch, "/api/mood/"+created.ID, gin.H{"content": "better now", "tags": []string{}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.EntryDetailResponse](t, w).Entry
	text, _ := updated.Content.Text()
	assert.Equal(t, "better now", text)
	assert.Empty(t, updated.Tags)

	w = doJSON(t, r, http.MethodDelete, "/api/journal/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/mood/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[dto.EntryDetailResponse](t, w).Entry.ID)

	w = doJSON(t, r, http.MethodGet, "/api/mood/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(apperr.CodeEntryNotFound), decode[APIError](t, w).Code)
}

func TestAddEntryRejectsBadInput(t *testing.T) {
	r := newTestRouter(t, false)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   string
	}{
		{
			name:   "gratitude needs a list",
			path:   "/api/gratitude",
			body:   gin.H{"content": "tea"},
			status: http.StatusBadRequest,
			code:   string(apperr.CodeInvalidInput),
		},
		{
			name:   "type mismatch",
			path:   "/api/mood",
			body:   gin.H{"type": "journal", "content": "x"},
			status: http.StatusBadRequest,
			code:   string(apperr.CodeInvalidEntryType),
		},
		{
			name:   "unknown tag",
			path:   "/api/mood",
			body:   gin.H{"content": "x", "tags": []string{"6f1c1a52-4c55-4a3e-9a39-3f1f6a0b8c21"}},
			status: http.StatusBadRequest,
			code:   string(apperr.CodeInvalidTag),
		},
		{
			name:   "future datetime",
			path:   "/api/mood",
			body:   gin.H{"content": "x", "datetime": time.Now().Add(time.Hour).UTC().Format(time.RFC3339)},
			status: http.StatusBadRequest,
			code:   string(apperr.CodeInvalidInput),
		},
		{
			name:   "malformed json",
			path:   "/api/mood",
			body:   "not an object",
			status: http.StatusBadRequest,
			code:   ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, decode[APIError](t, w).Code)
		})
	}
}

func TestGetEntriesByDateValidation(t *testing.T) {
	r := newTestRouter(t, false)

	w := doJSON(t, r, http.MethodGet, "/api/mood", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeMissingField, decode[APIError](t, w).Code)

	w = doJSON(t, r, http.MethodGet, "/api/mood?date=2021-02-30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/mood?date=2999-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	apiErr := decode[APIError](t, w)
	assert.Equal(t, string(apperr.CodeInvalidInput), apiErr.Code)
	assert.Contains(t, apiErr.Details, "date")

	w = doJSON(t, r, http.MethodGet, "/api/mood/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTagEndpoints(t *testing.T) {
	r := newTestRouter(t, false)
	health := createTag(t, r, "health")
	createTag(t, r, "family")

	w := doJSON(t, r, http.MethodPost, "/api/tags", gin.H{"name": "health"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, string(apperr.CodeTagNameExists), decode[APIError](t, w).Code)

	w = doJSON(t, r, http.MethodPost, "/api/tags", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tags := decode[dto.TagListResponse](t, w).Tags
	require.Len(t, tags, 2)
	assert.Equal(t, "family", tags[0].Name)

	w = doJSON(t, r, http.MethodPatch, "/api/tags/"+health.ID, gin.H{"name": "fitness"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "fitness", decode[dto.TagDetailResponse](t, w).Tag.Name)

	w = doJSON(t, r, http.MethodPatch, "/api/tags/"+health.ID, gin.H{"name": "family"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/mood", gin.H{"content": "ran 5k", "tags": []string{health.ID}, "datetime": "2020-10-25T08:00:00Z"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entryID := decode[dto.EntryDetailResponse](t, w).Entry.ID

	w = doJSON(t, r, http.MethodDelete, "/api/tags/"+health.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, health.ID, decode[dto.TagDetailResponse](t, w).Tag.ID)

	w = doJSON(t, r, http.MethodGet, "/api/tags/"+health.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(apperr.CodeTagNotFound), decode[APIError](t, w).Code)

	w = doJSON(t, r, http.MethodGet, "/api/mood/"+entryID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.EntryDetailResponse](t, w).Entry.Tags)
}

func TestExportEndpoint(t *testing.T) {
	t.Run("without storage", func(t *testing.T) {
		r := newTestRouter(t, false)
		w := doJSON(t, r, http.MethodPost, "/api/export", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("writes a snapshot", func(t *testing.T) {
		r := newTestRouter(t, true)
		createTag(t, r, "work")

		w := doJSON(t, r, http.MethodPost, "/api/export", gin.H{"name": "nightly"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		result := decode[export.Result](t, w)
		assert.Equal(t, 1, result.Tags)
		assert.Equal(t, 0, result.Entries)
		assert.Contains(t, result.Key, "exports/")
	})
}

func TestAddEntryAcceptsDateOnlyDatetime(t *testing.T) {
	r := newTestRouter(t, false)

	w := doJSON(t, r, http.MethodPost, "/api/gratitude", gin.H{"content": []string{"tea", "sun"}, "datetime": "2020-10-25"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.EntryDetailResponse](t, w).Entry
	assert.True(t, created.Datetime.Equal(time.Date(2020, 10, 25, 0, 0, 0, 0, time.UTC)))

	w = doJSON(t, r, http.MethodGet, "/api/gratitude?date=2020-10-25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[dto.EntryListResponse](t, w).Entries, 1)

	w = doJSON(t, r, http.MethodPost, "/api/gratitude", gin.H{"content": []string{"tea"}, "datetime": "2021-02-30"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
