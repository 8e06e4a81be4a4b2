// Package chi exposes the HTTP API: search, health and metrics endpoints
// on a go-chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hanseo-labs/postfind/internal/domain"
	"github.com/hanseo-labs/postfind/internal/domain/search/request"
	healthuc "github.com/hanseo-labs/postfind/internal/usecase/health"
	searchuc "github.com/hanseo-labs/postfind/internal/usecase/search"
)

// Searcher runs a validated search request.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Page, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	search        Searcher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeInvalidRequest),
		sentinelHandler(domain.ErrPostNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrRetrievalFailed, http.StatusServiceUnavailable, codeRetrievalFailed),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
	}
	return s
}

// Register mounts the API routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/api/v1/posts/search", s.SearchPosts)
	r.Get("/healthz", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Response codes returned in error bodies.
const (
	codeInvalidRequest       = "invalid_request"
	codeNotFound             = "not_found"
	codeRetrievalFailed      = "retrieval_failed"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeInternalError        = "internal_error"
)

type paginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int64 `json:"total_pages"`
}

type searchResponse struct {
	Status     string         `json:"status"`
	Data       any            `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchPosts handles GET /api/v1/posts/search.
func (s *Server) SearchPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "page must be a positive integer")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "limit must be a positive integer")
		return
	}

	req, err := request.New(q, page, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	result, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	totalPages := result.TotalCount / int64(req.Limit())
	if result.TotalCount%int64(req.Limit()) != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Status: "success",
		Data:   result.Posts,
		Pagination: paginationMeta{
			Page:       req.Page(),
			Limit:      req.Limit(),
			TotalCount: result.TotalCount,
			TotalPages: totalPages,
		},
	})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

var errZeroParam = errors.New("explicit zero")

// queryInt reads an optional integer query parameter. Absent means zero,
// which the request value object replaces with its default. An explicit
// "0" is rejected here; only absence selects the default.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, errZeroParam
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrPostNotFound,
		domain.ErrRetrievalFailed,
		domain.ErrEmbeddingUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
