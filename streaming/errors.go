package streaming

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotAuthenticated indicates an operation requiring a session was
	// attempted without one
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid streaming client configuration")
)

// TransportError indicates the request failed before a response was received
// (connection refused, timeout, DNS failure). It carries no server message.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError indicates the server answered with a non-2xx HTTP status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error %d", e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ServerError indicates the HTTP exchange succeeded but the payload carried
// an explicit error field. Message is the server's text verbatim.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// DecodeError indicates a response body could not be parsed into the
// expected shape. The raw parse failure is deliberately not carried.
type DecodeError struct{}

func (e *DecodeError) Error() string {
	return "parsing error"
}

// UploadErrorKind classifies upload failures
type UploadErrorKind int

const (
	// UploadErrorIO indicates the video source could not be read
	UploadErrorIO UploadErrorKind = iota
	// UploadErrorServer indicates the server rejected the upload
	UploadErrorServer
)

// UploadError indicates a video upload failed
type UploadError struct {
	Kind    UploadErrorKind
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Message normalizes any error produced by the client into a short
// human-readable string. Callers display this instead of branching on
// transport status codes.
func Message(err error) string {
	var (
		transportErr *TransportError
		statusErr    *StatusError
		serverErr    *ServerError
		decodeErr    *DecodeError
		uploadErr    *UploadError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &serverErr):
		return serverErr.Message
	case errors.As(err, &uploadErr):
		return uploadErr.Message
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Server error %d", statusErr.StatusCode)
	case errors.As(err, &decodeErr):
		return "Parsing error"
	case errors.As(err, &transportErr):
		return "Network error"
	case errors.Is(err, ErrNotAuthenticated):
		return "Not logged in"
	default:
		return err.Error()
	}
}
