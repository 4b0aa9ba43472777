package http

import (
	cl "album-catalog/pkg/catelog"
	"context"
	"net/http"

	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// Stable error strings returned in the "error" field of failure bodies.
const (
	errBadInput = "Bad input!"
	errInternal = "Internal Service Error!"
	errTimeout  = "Request timed out!"
	errNotFound = "Record does not exist in the database"
	errConflict = "Record already exists!"
)

// statusFor maps an error to its response status and body.
func statusFor(err error) (int, cl.ErrorRes) {
	switch {
	case cl.IsValidation(err):
		return http.StatusBadRequest, cl.ErrorRes{Error: errBadInput, Message: errors.Cause(err).Error()}
	case errors.Is(err, cl.ErrNotFound):
		return http.StatusNotFound, cl.ErrorRes{Error: errNotFound}
	case errors.Is(err, cl.ErrConflict):
		return http.StatusConflict, cl.ErrorRes{Error: errConflict}
	case errors.Is(err, cl.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, cl.ErrorRes{Error: errTimeout}
	default:
		return http.StatusInternalServerError, cl.ErrorRes{Error: errInternal}
	}
}

// writeError logs err under label and writes the mapped error response. A
// non-empty msg replaces the body's message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, label string, err error, msg string) {
	code, res := statusFor(err)
	if msg != "" {
		res.Message = msg
	}

	log := h.Logger.Error
	if code < http.StatusInternalServerError {
		log = h.Logger.Info
	}
	log(label,
		"request_id", requestid.Get(r.Context()),
		"status", code,
		"details", err.Error(),
	)
	_ = httputils.WriteJSON(w, r.URL.Query(), res, code)
}
