package domain

import "errors"

// Error taxonomy surfaced by the service layer. Handlers map these onto
// HTTP statuses and error codes; nothing below this layer panics or lets
// an unclassified failure escape.
var (
	// ErrNotInitialized means the platform client was never configured.
	// Not recoverable without redeploying with correct config.
	ErrNotInitialized = errors.New("service not initialized")

	// ErrInvalidCredentials covers every authentication rejection; the
	// message is deliberately uniform.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound means a lookup succeeded but matched no row. Rendered
	// as a specific empty state, never as a provider failure.
	ErrNotFound = errors.New("not found")
)

// ValidationError is a caller-side input failure. It never reaches the
// backend; correcting the input recovers it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
