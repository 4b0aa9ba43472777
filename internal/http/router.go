package http

import (
	"net/http"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	r := mux.NewRouter()
	// Path params are decoded by the handlers so that %2F stays inside a segment.
	r.UseEncodedPath()

	r.Use(httputils.TimeoutMiddleware(h.requestTimeout()))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(1 << 20))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.MaxConnectionsMiddleware(5000, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(250, httputils.ServiceUnavailableHandler(h.Logger)))

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)

	r.Methods("POST").Path("/album").Name("create_album").HandlerFunc(h.CreateAlbum)
	r.Methods("DELETE").Path("/album/{artist}/{album}").Name("delete_album").HandlerFunc(h.DeleteAlbum)
	r.Methods("DELETE").Path("/artist/{artist}").Name("delete_artist").HandlerFunc(h.DeleteArtist)
	r.Methods("GET").Path("/all").Name("list_albums").HandlerFunc(h.ListAlbums)

	if h.Users != nil {
		r.Methods("POST").Path("/user").Name("create_user").HandlerFunc(h.CreateUser)
	}
	h.router = r
	return r
}
