package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/theuddeshya/Dynasty/internal/codec"
	"github.com/theuddeshya/Dynasty/internal/core/graph"
	"github.com/theuddeshya/Dynasty/internal/logger"
	"github.com/theuddeshya/Dynasty/internal/service"
)

// Request body limits
const (
	MaxImportBytes    = 32 << 20
	MaxPositionsBytes = 4 << 20
)

// ReloadTimeout bounds a reload or import triggered over HTTP. Both are
// detached from the request so a client disconnect does not fail the dataset.
const ReloadTimeout = 2 * time.Minute

// ExplorerHandler handles explorer API requests
type ExplorerHandler struct {
	svc *service.ExplorerService
}

// NewExplorerHandler creates a new explorer handler
func NewExplorerHandler(svc *service.ExplorerService) *ExplorerHandler {
	return &ExplorerHandler{svc: svc}
}

// Register mounts the API routes on mux
func (h *ExplorerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /api/graph", h.GetGraph)
	mux.HandleFunc("GET /api/facets", h.GetFacets)
	mux.HandleFunc("GET /api/categories", h.GetCategories)
	mux.HandleFunc("GET /api/nodes/{id}", h.GetNode)

	mux.HandleFunc("GET /api/status", h.GetStatus)
	mux.HandleFunc("POST /api/reload", h.Reload)

	mux.HandleFunc("GET /api/positions", h.GetPositions)
	mux.HandleFunc("PUT /api/positions", h.SavePositions)

	mux.HandleFunc("POST /api/import/{format}", h.Import)
	mux.HandleFunc("GET /api/export/{format}", h.Export)
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PositionsRequest is the body of PUT /api/positions
type PositionsRequest struct {
	Positions []service.PositionPatch `json:"positions"`
}

// Health reports liveness together with the dataset state
func (h *ExplorerHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{
		"status":  "ok",
		"dataset": string(h.svc.Status().State),
	}, http.StatusOK)
}

// GetGraph returns the derived graph for the search and facet query
// parameters. An empty query returns the canonical graph.
func (h *ExplorerHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := graph.Criteria{
		Search:      q.Get("q"),
		Groups:      q["group"],
		Professions: q["profession"],
	}

	view, err := h.svc.Graph(r.Context(), criteria)
	if err != nil {
		h.writeServiceError(w, "Failed to get graph", err)
		return
	}
	h.writeJSON(w, view, http.StatusOK)
}

// GetFacets returns the group and profession option lists
func (h *ExplorerHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Facets(), http.StatusOK)
}

// GetCategories returns the category legend
func (h *ExplorerHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Categories(), http.StatusOK)
}

// GetNode returns a node with its neighbourhood
func (h *ExplorerHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid node ID", "Node ID is required", http.StatusBadRequest)
		return
	}

	detail, err := h.svc.Node(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "Failed to get node", err)
		return
	}
	h.writeJSON(w, detail, http.StatusOK)
}

// GetStatus returns the state of the most recent load
func (h *ExplorerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Status(), http.StatusOK)
}

// Reload reloads the configured dataset source. A failed load still answers
// 200: the failure is carried in the status payload and the service keeps
// serving an empty graph.
func (h *ExplorerHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), ReloadTimeout)
	defer cancel()

	err := h.svc.Reload(ctx)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSuperseded), errors.Is(err, service.ErrClosed), errors.Is(err, service.ErrNoSource):
		h.writeServiceError(w, "Failed to reload dataset", err)
		return
	default:
		logger.Warn("Reload finished with a failed load", "err", err)
	}
	h.writeJSON(w, h.svc.Status(), http.StatusOK)
}

// GetPositions returns the session's renderer positions
func (h *ExplorerHandler) GetPositions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.Positions(), http.StatusOK)
}

// SavePositions records renderer positions
func (h *ExplorerHandler) SavePositions(w http.ResponseWriter, r *http.Request) {
	var req PositionsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxPositionsBytes)).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	applied, err := h.svc.UpdatePositions(r.Context(), req.Positions)
	if err != nil {
		h.writeServiceError(w, "Failed to save positions", err)
		return
	}
	h.writeJSON(w, map[string]int{"received": len(req.Positions), "applied": applied}, http.StatusOK)
}

// Import replaces the session dataset with the request body
func (h *ExplorerHandler) Import(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), ReloadTimeout)
	defer cancel()

	status, err := h.svc.Import(ctx, format, http.MaxBytesReader(w, r.Body, MaxImportBytes))
	if err != nil {
		h.writeServiceError(w, "Failed to import dataset", err)
		return
	}
	h.writeJSON(w, status, http.StatusOK)
}

// Export writes the current dataset as a download
func (h *ExplorerHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := codec.Normalize(r.PathValue("format"))

	var buf bytes.Buffer
	if err := h.svc.Export(r.Context(), format, &buf); err != nil {
		h.writeServiceError(w, "Failed to export dataset", err)
		return
	}

	contentType, ext := exportMeta(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=dataset."+ext)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("Failed to write export", "format", format, "err", err)
	}
}

func exportMeta(format string) (contentType, ext string) {
	switch format {
	case codec.FormatYAML:
		return "application/x-yaml", "yaml"
	case codec.FormatMarkdown:
		return "text/markdown; charset=utf-8", "md"
	default:
		return "application/json", "json"
	}
}

// Helper methods

func (h *ExplorerHandler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON", "err", err)
	}
}

func (h *ExplorerHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		logger.Error("Failed to encode error response", "err", err)
	}
}

func (h *ExplorerHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.Error(msg, "err", err)
	}
	h.writeError(w, msg, err.Error(), code)
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, service.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNoSource):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, service.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
