package http

import (
	cl "album-catalog/pkg/catelog"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/json"
	"github.com/twitsprout/tools/requestid"
)

// CreateAlbum stores the album in the request body, replacing any album with
// the same artist and album name.
func (h *Handler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, r, "[CreateAlbum] error reading request body", cl.NewValidationError(err.Error()), "")
		return
	}
	album, err := cl.DecodeCreateAlbum(body)
	if err != nil {
		h.writeError(w, r, "[CreateAlbum] error parsing request", err, "")
		return
	}

	if h.Publisher != nil {
		h.publish(w, r, "[CreateAlbum]", cl.OperationPostAlbum, body)
		return
	}

	if err := h.Catalog.CreateAlbum(ctx, album); err != nil {
		h.writeError(w, r, "[CreateAlbum] error creating album", err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAlbum removes the album named by the path and echoes its key.
func (h *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := parseDeleteAlbumRequest(r)
	if err != nil {
		h.writeError(w, r, "[DeleteAlbum] error parsing request", err, "")
		return
	}

	if h.Publisher != nil {
		var buf bytes.Buffer
		if err := json.Encode(&buf, req, ""); err != nil {
			h.writeError(w, r, "[DeleteAlbum] error encoding message", err, "")
			return
		}
		h.publish(w, r, "[DeleteAlbum]", cl.OperationDeleteAlbum, buf.Bytes())
		return
	}

	res, err := h.Catalog.DeleteAlbum(ctx, req)
	if err != nil {
		var msg string
		if errors.Is(err, cl.ErrNotFound) {
			msg = fmt.Sprintf("Artist '%s' and album '%s' were not found in the table", req.Artist, req.Album)
		}
		h.writeError(w, r, "[DeleteAlbum] error deleting album", err, msg)
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), res, http.StatusOK)
}

// DeleteArtist removes every album of the artist in the path. A missing
// artist is still a 200; unprocessed albums yield a 207 when the catalog
// reports them.
func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.Get(ctx)

	artist, err := pathParam(r, "artist")
	if err != nil {
		h.writeError(w, r, "[DeleteArtist] error parsing request", err, "")
		return
	}

	res, err := h.Catalog.DeleteArtist(ctx, cl.DeleteArtistReq{Artist: artist})
	if err != nil {
		h.writeError(w, r, "[DeleteArtist] error deleting artist", err, "")
		return
	}

	code := http.StatusOK
	if res.Partial() {
		code = http.StatusMultiStatus
		h.Logger.Warn("[DeleteArtist] artist partially deleted",
			"request_id", reqID,
			"artist", artist,
			"unprocessed", len(res.Unprocessed),
		)
	}
	_ = httputils.WriteJSON(w, r.URL.Query(), res, code)
}

// ListAlbums writes every album in the catalog as a JSON array.
func (h *Handler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	res, err := h.Catalog.ListAlbums(r.Context())
	if err != nil {
		h.writeError(w, r, "[ListAlbums] error getting albums list", err, "")
		return
	}

	_ = httputils.WriteJSON(w, r.URL.Query(), cl.NormalizeAlbums(res.Albums), http.StatusOK)
}

func (h *Handler) publish(w http.ResponseWriter, r *http.Request, label string, op cl.Operation, body []byte) {
	id, err := h.Publisher.Publish(r.Context(), op, body)
	if err != nil {
		h.writeError(w, r, label+" error publishing message", err, "")
		return
	}
	h.Logger.Debug(label+" message published",
		"request_id", requestid.Get(r.Context()),
		"operation", string(op),
		"message_id", id,
	)
	_ = httputils.WriteJSON(w, r.URL.Query(), cl.EnqueuedRes{MessageID: id}, http.StatusOK)
}

func parseDeleteAlbumRequest(r *http.Request) (cl.DeleteAlbumReq, error) {
	var req cl.DeleteAlbumReq
	artist, err := pathParam(r, "artist")
	if err != nil {
		return req, err
	}
	album, err := pathParam(r, "album")
	if err != nil {
		return req, err
	}
	req = cl.DeleteAlbumReq{
		Artist: artist,
		Album:  album,
	}
	return req, cl.ValidateKey(req.Artist, req.Album)
}

// pathParam returns the URL-decoded path variable name.
func pathParam(r *http.Request, name string) (string, error) {
	raw := mux.Vars(r)[name]
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", cl.NewValidationError(fmt.Sprintf("invalid %s '%s'", name, raw))
	}
	if v == "" {
		return "", cl.NewValidationError(name + " must be provided")
	}
	return v, nil
}
