package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nakamurapomeo/collage-app/pkg/album"
	apperrors "github.com/nakamurapomeo/collage-app/pkg/errors"
	"github.com/nakamurapomeo/collage-app/pkg/pipeline"
)

// layoutRequest is the body for POST /api/v1/layout. Pack options are
// embedded, so width/target_row_height/gutter sit at the top level.
type layoutRequest struct {
	Items []album.Item `json:"items"`
	pipeline.Options
}

// handleLayout packs an ad-hoc item list without storing anything.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	if len(req.Items) == 0 {
		badRequest(w, "items is required")
		return
	}

	a := album.Album{Items: req.Items}
	layout, err := s.runner.GenerateLayout(r.Context(), a, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "list albums"))
		return
	}
	writeJSON(w, http.StatusOK, albums)
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	var a album.Album
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	if err := apperrors.ValidateAlbumName(a.Name); err != nil {
		writeError(w, err)
		return
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	} else if err := apperrors.ValidateAlbumID(a.ID); err != nil {
		writeError(w, err)
		return
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Items == nil {
		a.Items = []album.Item{}
	}

	if err := s.store.Put(r.Context(), a); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "store album"))
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handlePutAlbum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	var a album.Album
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		badRequest(w, "invalid request body: %v", err)
		return
	}
	if err := apperrors.ValidateAlbumName(a.Name); err != nil {
		writeError(w, err)
		return
	}

	a.ID = id
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	if a.Items == nil {
		a.Items = []album.Item{}
	}

	if err := s.store.Put(r.Context(), a); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "store album"))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete album"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAlbumLayout packs a stored album. Pack parameters come from query
// params; format selects the response body (json layout by default).
func (s *Server) handleAlbumLayout(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := optsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), a, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	data := result.Artifacts[format]
	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	case pipeline.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func optsFromQuery(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()

	var err error
	if opts.Width, err = floatParam(q.Get("width")); err != nil {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid width: %s", q.Get("width"))
	}
	if opts.TargetRowHeight, err = floatParam(q.Get("target")); err != nil {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid target: %s", q.Get("target"))
	}
	if opts.Gutter, err = floatParam(q.Get("gutter")); err != nil {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid gutter: %s", q.Get("gutter"))
	}
	if opts.LastRowCap, err = floatParam(q.Get("cap")); err != nil {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid cap: %s", q.Get("cap"))
	}
	opts.SnapLastToEdge = q.Get("snap") == "true" || q.Get("snap") == "1"
	opts.Labels = q.Get("labels") == "true" || q.Get("labels") == "1"
	opts.Refresh = q.Get("refresh") == "true" || q.Get("refresh") == "1"
	if scale := q.Get("scale"); scale != "" {
		if opts.Scale, err = floatParam(scale); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid scale: %s", scale)
		}
	}
	return opts, nil
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
