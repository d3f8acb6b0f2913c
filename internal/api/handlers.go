// Package api exposes HTTP handlers that turn tracker packages into reports.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	ftracker "github.com/lucasjlepore/fit-tracker"
	"github.com/lucasjlepore/fit-tracker/internal/observability"
)

// maxBodyBytes bounds the size of a report request.
const maxBodyBytes = 1 << 16

// Handler serves report requests.
type Handler struct {
	logger *log.Logger
}

// Option customises a Handler.
type Option func(*Handler)

// WithLogger overrides the handler logger.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler builds a Handler.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/reports", h.createReport).Methods(http.MethodPost)
	r.HandleFunc("/v1/activities", h.listActivities).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
}

// ReportRequest is one tracker package.
type ReportRequest struct {
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

// ReportResponse is the computed summary and its rendered message.
type ReportResponse struct {
	ftracker.InfoMessage
	Message string `json:"message"`
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) createReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	training, err := ftracker.ReadPackage(req.WorkoutType, req.Data)
	if err != nil {
		observability.RecordRejected(err)
		h.logger.Printf("rejected package %q: %v", req.WorkoutType, err)
		switch {
		case errors.Is(err, ftracker.ErrUnknownActivity):
			writeError(w, http.StatusBadRequest, observability.ReasonUnknownActivity, err.Error())
		case errors.Is(err, ftracker.ErrInvalidParameters):
			writeError(w, http.StatusBadRequest, observability.ReasonInvalidParameters, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		}
		return
	}

	info := ftracker.ShowTrainingInfo(training)
	observability.RecordReport(info)
	writeJSON(w, http.StatusOK, ReportResponse{InfoMessage: info, Message: info.Message()})
}

func (h *Handler) listActivities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ftracker.Activities())
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
