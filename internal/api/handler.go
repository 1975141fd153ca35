package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eugenenazirov/pagination/internal/paginator"
	"github.com/eugenenazirov/pagination/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Handler wires paginator and storage dependencies into HTTP handlers.
type Handler struct {
	paginator paginator.Paginator
	storage   storage.Storage
	metrics   *Metrics

	clock func() time.Time

	mu                sync.RWMutex
	defaultsUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMetrics records request and computation metrics into m.
func WithMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(p paginator.Paginator, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		paginator: p,
		storage:   store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.defaultsUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetDefaults(w http.ResponseWriter, r *http.Request) {
	_ = r
	defaults, err := h.storage.GetDefaults()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := defaultsResponse{
		Defaults:  defaults,
		UpdatedAt: h.currentDefaultsUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutDefaults(w http.ResponseWriter, r *http.Request) {
	var req storage.Defaults
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.storage.SetDefaults(req); err != nil {
		if errors.Is(err, storage.ErrInvalidDefaults) {
			writeError(w, http.StatusBadRequest, "Invalid defaults", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markDefaultsUpdated()

	defaults, err := h.storage.GetDefaults()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := defaultsResponse{
		Defaults:  defaults,
		UpdatedAt: h.currentDefaultsUpdatedAt(),
		Message:   "Defaults updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePaginateJSON(w http.ResponseWriter, r *http.Request) {
	var req paginateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.paginate(w, req)
}

func (h *Handler) handlePaginateQuery(w http.ResponseWriter, r *http.Request) {
	req, err := parsePaginateQuery(r.URL.Query())
	if err != nil {
		var qErr *queryParamError
		if errors.As(err, &qErr) {
			h.metrics.observeRejected(qErr.field)
			writeFieldError(w, qErr.field, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	h.paginate(w, req)
}

func (h *Handler) paginate(w http.ResponseWriter, req paginateRequest) {
	defaults, err := h.storage.GetDefaults()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	opts := defaults.Apply(req.CurrentPage, req.TotalItems, req.ItemsPerPage, req.SiblingsCount, req.Boundaries)

	var (
		result  paginator.Result
		elapsed time.Duration
	)
	err = storage.CheckWindow(opts)
	if err == nil {
		start := time.Now()
		result, err = h.paginator.Compute(opts)
		elapsed = time.Since(start)
	}

	if err != nil {
		var argErr *paginator.ArgumentError
		switch {
		case errors.As(err, &argErr):
			h.metrics.observeRejected(argErr.Field)
			writeFieldError(w, argErr.Field, err.Error())
		case errors.Is(err, paginator.ErrInvalidArgument):
			writeError(w, http.StatusBadRequest, "Invalid argument", err.Error())
		default:
			writeInternalError(w, err)
		}
		return
	}

	h.metrics.observeCompute(elapsed, result.LastPage)

	resp := paginateResponse{
		Result:            result,
		TotalPages:        result.LastPage,
		Options:           opts,
		CalculationTimeUs: elapsed.Microseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentDefaultsUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.defaultsUpdatedAt
}

func (h *Handler) markDefaultsUpdated() {
	h.mu.Lock()
	h.defaultsUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

var queryFields = []string{
	paginator.FieldCurrentPage,
	paginator.FieldTotalItems,
	paginator.FieldItemsPerPage,
	paginator.FieldSiblingsCount,
	paginator.FieldBoundaries,
}

func parsePaginateQuery(values url.Values) (paginateRequest, error) {
	var req paginateRequest
	targets := map[string]**int{
		paginator.FieldCurrentPage:   &req.CurrentPage,
		paginator.FieldTotalItems:    &req.TotalItems,
		paginator.FieldItemsPerPage:  &req.ItemsPerPage,
		paginator.FieldSiblingsCount: &req.SiblingsCount,
		paginator.FieldBoundaries:    &req.Boundaries,
	}
	for _, field := range queryFields {
		raw := strings.TrimSpace(values.Get(field))
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return paginateRequest{}, &queryParamError{field: field, raw: raw}
		}
		*targets[field] = &value
	}
	return req, nil
}

type queryParamError struct {
	field string
	raw   string
}

func (e *queryParamError) Error() string {
	return fmt.Sprintf("query parameter %s=%q is not an integer", e.field, e.raw)
}

type paginateRequest struct {
	CurrentPage   *int `json:"currentPage"`
	TotalItems    *int `json:"totalItems"`
	ItemsPerPage  *int `json:"itemsPerPage"`
	SiblingsCount *int `json:"siblingsCount"`
	Boundaries    *int `json:"boundaries"`
}

type paginateResponse struct {
	paginator.Result
	TotalPages        int               `json:"totalPages"`
	Options           paginator.Options `json:"options"`
	CalculationTimeUs int64             `json:"calculationTimeUs"`
}

type defaultsResponse struct {
	storage.Defaults
	UpdatedAt time.Time `json:"updatedAt"`
	Message   string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Field      string `json:"field,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// decodeBody reads at most maxBodyBytes of JSON into dst and writes the error
// response itself when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request too large",
				fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeFieldError(w http.ResponseWriter, field, details string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Invalid argument",
		Details: details,
		Field:   field,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
