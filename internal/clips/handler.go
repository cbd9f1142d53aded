package clips

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"video-catalog/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the video catalog HTTP endpoints using go-chi.
type Handler struct {
	svc     *Service
	share   *ShareService
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler over the given services. Metrics may be nil to
// disable metric recording (e.g. in tests).
func NewHandler(svc *Service, share *ShareService, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, share: share, log: log, metrics: m}
}

type trimRequest struct {
	TrimStart float64 `json:"trim_start"`
	TrimEnd   float64 `json:"trim_end"`
}

type mergeRequest struct {
	VideoIDs []string `json:"video_ids"`
}

type shareRequest struct {
	TTLHours float64 `json:"ttl_hours"`
}

// UploadVideo handles POST /videos. Multipart field "file" carries the clip.
func (h *Handler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Debug("invalid upload form", slog.String("error", err.Error()))
		h.writeError(w, InvalidArgumentf("multipart field %q is required", "file"))
		return
	}
	defer file.Close()

	// Store under a unique name so no two catalog records ever share a path.
	name := StoredName(header.Filename, time.Now())
	path := filepath.Join(h.svc.StorageDir(), name)
	dst, err := os.Create(path)
	if err != nil {
		h.writeError(w, IOFailuref(err, "store upload %s", name))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		h.writeError(w, IOFailuref(err, "store upload %s", name))
		return
	}
	if err := dst.Close(); err != nil {
		h.writeError(w, IOFailuref(err, "store upload %s", name))
		return
	}

	clip, err := h.svc.Upload(path)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("video uploaded",
		slog.String("id", clip.ID),
		slog.String("filename", clip.Filename),
		slog.Int64("size", clip.Size),
		slog.Float64("duration", clip.Duration))
	h.writeJSON(w, http.StatusCreated, clip)
	if h.metrics != nil {
		h.metrics.IncUploads()
	}
}

// GetVideo handles GET /videos/{video_id}.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	clip, err := h.svc.Get(chi.URLParam(r, "video_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, clip)
}

// ListVideos handles GET /videos.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

// TrimVideo handles POST /videos/{video_id}/trim.
// Body: { "trim_start": 1.0, "trim_end": 2.5 }.
func (h *Handler) TrimVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "video_id")

	var req trimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid trim body", slog.String("error", err.Error()))
		h.writeError(w, InvalidArgumentf("invalid request body"))
		return
	}

	clip, err := h.svc.Trim(r.Context(), id, req.TrimStart, req.TrimEnd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("video trimmed",
		slog.String("source_id", id),
		slog.String("id", clip.ID),
		slog.Float64("duration", clip.Duration))
	h.writeJSON(w, http.StatusCreated, clip)
	if h.metrics != nil {
		h.metrics.IncTrims()
	}
}

// MergeVideos handles POST /videos/merge.
// Body: { "video_ids": ["a", "b"] }.
func (h *Handler) MergeVideos(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid merge body", slog.String("error", err.Error()))
		h.writeError(w, InvalidArgumentf("invalid request body"))
		return
	}

	clip, err := h.svc.Merge(req.VideoIDs)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("videos merged",
		slog.Int("inputs", len(req.VideoIDs)),
		slog.String("id", clip.ID),
		slog.Float64("duration", clip.Duration))
	h.writeJSON(w, http.StatusCreated, clip)
	if h.metrics != nil {
		h.metrics.IncMerges()
	}
}

// ShareVideo handles POST /videos/{video_id}/share.
// Body: { "ttl_hours": 48 } (optional; defaults to 24).
func (h *Handler) ShareVideo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "video_id")

	var req shareRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.log.Debug("invalid share body", slog.String("error", err.Error()))
			h.writeError(w, InvalidArgumentf("invalid request body"))
			return
		}
	}

	tok, err := h.share.Issue(id, req.TTLHours)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("share token issued",
		slog.String("video_id", id),
		slog.Time("expires_at", tok.ExpiresAt))
	h.writeJSON(w, http.StatusCreated, tok)
	if h.metrics != nil {
		h.metrics.IncTokensIssued()
	}
}

// ResolveShare handles GET /share/{token}, serving the clip's file.
func (h *Handler) ResolveShare(w http.ResponseWriter, r *http.Request) {
	clip, err := h.share.Resolve(chi.URLParam(r, "token"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+clip.Filename+"\"")
	http.ServeFile(w, r, clip.Filepath)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNotFound:
			status = http.StatusNotFound
		case KindInvalidArgument:
			status = http.StatusBadRequest
		case KindIOFailure:
			status = http.StatusInternalServerError
		case KindDelegateFailure:
			status = http.StatusBadGateway
		}
	}

	if status >= 500 {
		h.log.Error("request failed", slog.String("error", err.Error()))
	} else {
		h.log.Info("request rejected", slog.String("error", err.Error()))
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
