package catelog

// Track is a single song on an album. Length is kept exactly as received.
type Track struct {
	Title  string `json:"title"`
	Length string `json:"length"`
}

// Album is the only record persisted in the catalog table, keyed by
// (Artist, Album). Tracks keep their insertion order.
type Album struct {
	Artist string  `json:"artist"`
	Album  string  `json:"album"`
	Tracks []Track `json:"tracks"`
}

// Key returns the compound key identifying the album.
func (a Album) Key() AlbumKey {
	return AlbumKey{Artist: a.Artist, Album: a.Album}
}

// AlbumKey is the (partition, sort) key pair of an album record.
type AlbumKey struct {
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// CreateAlbumRequest is the wire payload of POST /album.
type CreateAlbumRequest struct {
	Artist string  `json:"artist"`
	Album  string  `json:"album"`
	Tracks []Track `json:"tracks"`
}

// DeleteAlbumReq identifies a single album to remove.
type DeleteAlbumReq struct {
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// DeleteAlbumRes confirms which album was removed.
type DeleteAlbumRes struct {
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// DeleteArtistReq identifies the artist whose albums are removed.
type DeleteArtistReq struct {
	Artist string `json:"artist"`
}

// DeleteArtistRes reports the outcome of removing every album of an artist.
// Unprocessed holds the keys the store still refused after all retries.
type DeleteArtistRes struct {
	Message     string     `json:"message"`
	Found       bool       `json:"-"`
	Deleted     int        `json:"deleted"`
	Unprocessed []AlbumKey `json:"unprocessed,omitempty"`
}

// Partial reports whether some albums could not be removed.
func (r DeleteArtistRes) Partial() bool {
	return len(r.Unprocessed) > 0
}

// ListAlbumsRes is the full catalog. It is encoded as a bare JSON array.
type ListAlbumsRes struct {
	Albums []Album
}

// ErrorRes is the body of every failure response.
type ErrorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// EnqueuedRes is returned when a request was handed to the async transport.
type EnqueuedRes struct {
	MessageID string `json:"messageId"`
}
