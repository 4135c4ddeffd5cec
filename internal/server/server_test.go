package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
	"github.com/nakamurapomeo/collage-app/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(Config{
		Addr:   ":0",
		Store:  st,
		Runner: pipeline.NewRunner(nil, nil, logger),
		Logger: logger,
	}), st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	body := map[string]any{
		"items": []map[string]any{
			{"id": "a", "aspect_ratio": 2.0},
			{"id": "b", "aspect_ratio": 1.0},
			{"id": "c", "aspect_ratio": 1.0},
		},
		"width":             400,
		"target_row_height": 150,
	}
	rec := doJSON(t, s.Router(), http.MethodPost, "/api/v1/layout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body)
	}

	var l album.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if l.Rows != 2 || len(l.Items) != 3 {
		t.Errorf("layout = %d rows / %d items, want 2 / 3", l.Rows, len(l.Items))
	}
}

func TestLayoutEndpointValidation(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	// Missing items
	rec := doJSON(t, h, http.MethodPost, "/api/v1/layout", map[string]any{"width": 400})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty items: status = %d, want 400", rec.Code)
	}

	// Bad pack params
	rec = doJSON(t, h, http.MethodPost, "/api/v1/layout", map[string]any{
		"items": []map[string]any{{"id": "a"}},
		"width": -1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative width: status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code == "" {
		t.Error("error response missing code")
	}
}

func TestAlbumCRUD(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	// Create
	rec := doJSON(t, h, http.MethodPost, "/api/v1/albums", album.Album{
		Name:  "Vacation",
		Items: []album.Item{{ID: "a", AspectRatio: 1.5}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body: %s", rec.Code, rec.Body)
	}
	var created album.Album
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created album has no ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("created album has no timestamp")
	}

	// Get
	rec = doJSON(t, h, http.MethodGet, "/api/v1/albums/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	// List
	rec = doJSON(t, h, http.MethodGet, "/api/v1/albums", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var albums []album.Album
	if err := json.Unmarshal(rec.Body.Bytes(), &albums); err != nil {
		t.Fatal(err)
	}
	if len(albums) != 1 {
		t.Errorf("list returned %d albums, want 1", len(albums))
	}

	// Update
	updated := created
	updated.Name = "Renamed"
	rec = doJSON(t, h, http.MethodPut, "/api/v1/albums/"+created.ID, updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("put: status = %d, body: %s", rec.Code, rec.Body)
	}
	var got album.Album
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Renamed" {
		t.Errorf("updated name = %q, want %q", got.Name, "Renamed")
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update should preserve CreatedAt")
	}

	// Delete
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/albums/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/albums/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rec.Code)
	}
}

func TestGetAlbumNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodGet, "/api/v1/albums/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "ALBUM_NOT_FOUND" {
		t.Errorf("error code = %q, want ALBUM_NOT_FOUND", resp.Error.Code)
	}
}

func TestCreateAlbumRejectsBadName(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodPost, "/api/v1/albums", album.Album{Name: ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAlbumLayoutEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Router()

	a := album.Album{
		ID:   "a1",
		Name: "test",
		Items: []album.Item{
			{ID: "a", AspectRatio: 2.0},
			{ID: "b", AspectRatio: 1.0},
		},
	}
	if err := st.Put(context.Background(), a); err != nil {
		t.Fatal(err)
	}

	// Default format is the JSON layout document.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/albums/a1/layout?width=400&target=150", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
	var l album.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if l.Width != 400 {
		t.Errorf("layout width = %g, want 400", l.Width)
	}

	// SVG format
	rec = doJSON(t, h, http.MethodGet, "/api/v1/albums/a1/layout?width=400&target=150&format=svg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("svg: status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("svg content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("svg body should start with <svg")
	}

	// Bad query param
	rec = doJSON(t, h, http.MethodGet, "/api/v1/albums/a1/layout?width=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad width: status = %d, want 400", rec.Code)
	}

	// Unknown format
	rec = doJSON(t, h, http.MethodGet, "/api/v1/albums/a1/layout?format=gif", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad format: status = %d, want 400", rec.Code)
	}
}
