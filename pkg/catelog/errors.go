package catelog

import "github.com/pkg/errors"

var ErrNotFound = errors.New("not found")
var ErrStoreUnavailable = errors.New("store unavailable")
var ErrTimeout = errors.New("operation timed out")
var ErrCorruptRecord = errors.New("corrupt record")
var ErrConflict = errors.New("already exists")

var ErrMissingArtist = &ValidationError{msg: "artist must be provided"}
var ErrMissingAlbum = &ValidationError{msg: "album must be provided"}
var ErrMissingUsername = &ValidationError{msg: "username must be provided"}
var ErrMissingEmail = &ValidationError{msg: "email must be provided"}
var ErrMissingPassword = &ValidationError{msg: "password must be provided"}

// ValidationError is returned for bad or missing user input. It is never
// retryable.
type ValidationError struct {
	msg string
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidation reports whether err was caused by invalid input.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRetryable reports whether err is a transient infrastructure failure that
// may succeed if attempted again.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrTimeout)
}
