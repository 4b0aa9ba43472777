package http

import (
	"album-catalog/internal"
	"time"

	"github.com/gorilla/mux"
	"github.com/twitsprout/tools"
)

// DefaultRequestTimeout bounds every request when RequestTimeout is unset.
const DefaultRequestTimeout = 30 * time.Second

type Handler struct {
	Version string
	AppName string
	router  *mux.Router
	Logger  tools.Logger
	Catalog internal.Catalog

	// Users enables POST /user when set.
	Users internal.Users
	// Publisher, when set, hands POST /album and DELETE /album requests to
	// the async transport instead of the catalog.
	Publisher internal.Publisher

	RequestTimeout time.Duration
}

func (h *Handler) requestTimeout() time.Duration {
	if h.RequestTimeout > 0 {
		return h.RequestTimeout
	}
	return DefaultRequestTimeout
}
