package http

import (
	cl "album-catalog/pkg/catelog"
	"net/http"

	httputils "github.com/twitsprout/tools/http"
)

// CreateUser registers a new user account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req cl.CreateUserRequest
	if err := httputils.ReadJSON(r.Body, &req); err != nil {
		h.writeError(w, r, "[CreateUser] error parsing request", cl.DecodeError(err), "")
		return
	}

	res, err := h.Users.CreateUser(r.Context(), req)
	if err != nil {
		h.writeError(w, r, "[CreateUser] error creating user", err, "")
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), res.User, http.StatusCreated)
}
