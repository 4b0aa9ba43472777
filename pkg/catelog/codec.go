package catelog

import (
	"strings"

	"github.com/twitsprout/tools/json"
)

// Operation names a logical catalog operation carried by an async message.
// The values match the "http" message attribute used for topic fan-out.
type Operation string

const (
	OperationPostAlbum    Operation = "PostAlbum"
	OperationDeleteAlbum  Operation = "DeleteAlbum"
	OperationDeleteArtist Operation = "DeleteArtist"
)

// ParseOperation returns the Operation named by s.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.TrimSpace(s)); op {
	case OperationPostAlbum, OperationDeleteAlbum, OperationDeleteArtist:
		return op, nil
	default:
		return "", NewValidationError("unknown operation '" + s + "'")
	}
}

// DecodeCreateAlbum converts a create payload into an Album. Absent or empty
// tracks decode to an empty, non-nil slice.
func DecodeCreateAlbum(b []byte) (Album, error) {
	var req CreateAlbumRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return Album{}, DecodeError(err)
	}
	return NewAlbum(req)
}

// DecodeError converts a JSON decode failure into a ValidationError. The
// offending input that the decoder appends to its message is dropped.
func DecodeError(err error) *ValidationError {
	msg, _, _ := strings.Cut(err.Error(), ": '")
	return NewValidationError(msg)
}

// NewAlbum validates a CreateAlbumRequest and converts it into an Album.
func NewAlbum(req CreateAlbumRequest) (Album, error) {
	if req.Artist == "" {
		return Album{}, ErrMissingArtist
	}
	if req.Album == "" {
		return Album{}, ErrMissingAlbum
	}
	tracks := make([]Track, 0, len(req.Tracks))
	tracks = append(tracks, req.Tracks...)
	return Album{
		Artist: req.Artist,
		Album:  req.Album,
		Tracks: tracks,
	}, nil
}

// DecodeDeleteAlbum reads the key of the album to remove from a message body.
func DecodeDeleteAlbum(b []byte) (DeleteAlbumReq, error) {
	var req DeleteAlbumReq
	if err := json.Unmarshal(b, &req); err != nil {
		return req, DecodeError(err)
	}
	return req, ValidateKey(req.Artist, req.Album)
}

// DecodeDeleteArtist reads the artist to remove from a message body.
func DecodeDeleteArtist(b []byte) (DeleteArtistReq, error) {
	var req DeleteArtistReq
	if err := json.Unmarshal(b, &req); err != nil {
		return req, DecodeError(err)
	}
	if req.Artist == "" {
		return req, ErrMissingArtist
	}
	return req, nil
}

// ValidateKey checks both halves of an album key are present.
func ValidateKey(artist, album string) error {
	if artist == "" {
		return ErrMissingArtist
	}
	if album == "" {
		return ErrMissingAlbum
	}
	return nil
}

// NormalizeAlbums guarantees a non-nil list where every album has a non-nil
// track list, so encoders never emit null.
func NormalizeAlbums(albums []Album) []Album {
	out := make([]Album, 0, len(albums))
	for _, a := range albums {
		if a.Tracks == nil {
			a.Tracks = []Track{}
		}
		out = append(out, a)
	}
	return out
}

// OperationAttribute is the message attribute naming the Operation of a
// published message.
const OperationAttribute = "http"

// Envelope is the notification wrapper a topic puts around a message when it
// delivers to a queue. Queue publishers use the same shape so workers see one
// format.
type Envelope struct {
	Type              string                       `json:"Type"`
	MessageID         string                       `json:"MessageId,omitempty"`
	TopicArn          string                       `json:"TopicArn,omitempty"`
	Message           string                       `json:"Message"`
	MessageAttributes map[string]EnvelopeAttribute `json:"MessageAttributes,omitempty"`
}

// EnvelopeAttribute is a single typed message attribute.
type EnvelopeAttribute struct {
	Type  string `json:"Type"`
	Value string `json:"Value"`
}

const envelopeTypeNotification = "Notification"

// NewEnvelope wraps body for op.
func NewEnvelope(op Operation, body []byte) Envelope {
	return Envelope{
		Type:    envelopeTypeNotification,
		Message: string(body),
		MessageAttributes: map[string]EnvelopeAttribute{
			OperationAttribute: {Type: "String", Value: string(op)},
		},
	}
}

// OpenEnvelope returns the operation and payload carried by a message. A body
// that is not a notification is returned as is with operation def.
func OpenEnvelope(b []byte, def Operation) (Operation, []byte, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil || env.Type != envelopeTypeNotification {
		if def == "" {
			return "", nil, NewValidationError("message carries no operation")
		}
		return def, b, nil
	}

	attr, ok := env.MessageAttributes[OperationAttribute]
	if !ok {
		if def == "" {
			return "", nil, NewValidationError("message carries no operation")
		}
		return def, []byte(env.Message), nil
	}
	op, err := ParseOperation(attr.Value)
	if err != nil {
		return "", nil, err
	}
	return op, []byte(env.Message), nil
}
