// internal/api/handler.go
//
// Feedback – JSON submission endpoint.
//
// Context
//   POST /api/feedback accepts a feedback.Submission as JSON and hands it to
//   a Submitter (the relay service in production).  The handler owns only
//   the HTTP contract: method, body decoding, and mapping outcomes to
//   status codes and `{message}` bodies.
//
// Status codes
//   •  200  notification handed to the mail transport
//   •  400  malformed body, missing required fields, or failed field rules
//   •  405  any method other than POST (with an Allow header)
//   •  500  delivery failure; the cause is logged, never echoed
//
//------------------------------------------------------------------------------

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/feedback/internal/feedback"
	"github.com/yanizio/feedback/internal/logger"
	"github.com/yanizio/feedback/internal/relay"
)

// MaxBodyBytes caps the request body.  A full submission is well under 8 KiB.
const MaxBodyBytes = 64 << 10

// Response messages owned by the HTTP layer.
const (
	MethodNotAllowedMessage = "Method not allowed"
	BadBodyMessage          = "Request body must be a JSON feedback submission"
)

// Submitter processes one submission.
type Submitter interface {
	Submit(ctx context.Context, s feedback.Submission) (string, error)
}

// Handler serves the submission endpoint.
type Handler struct {
	svc Submitter
}

// New returns a Handler backed by svc.
func New(svc Submitter) *Handler {
	return &Handler{svc: svc}
}

// Routes returns a router serving /feedback.  Mount it under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(h.methodNotAllowed)
	r.Post("/feedback", h.submit)
	return r
}

// Response is the JSON body of every reply.
type Response struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var sub feedback.Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		log.Infow("feedback body rejected", "error", err)
		WriteJSON(w, http.StatusBadRequest, Response{Message: BadBodyMessage})
		return
	}

	msg, err := h.svc.Submit(r.Context(), sub)

	var verr *feedback.ValidationError
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, Response{Message: msg})
	case errors.Is(err, feedback.ErrMissingRequired):
		WriteJSON(w, http.StatusBadRequest, Response{Message: feedback.RequiredFieldsMessage})
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, Response{Message: feedback.InvalidMessage, Fields: verr.Fields})
	default:
		log.Errorw("feedback submission failed", "error", err)
		WriteJSON(w, http.StatusInternalServerError, Response{Message: relay.FailureMessage})
	}
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	WriteJSON(w, http.StatusMethodNotAllowed, Response{Message: MethodNotAllowedMessage})
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("write json response", "error", err)
	}
}
