package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrNotFound        = errors.New("postcard not found")
	ErrInvalidArgument = errors.New("rejected by server")
)

// GenerationError is a failure reported by the generation service. Message
// is what the service said, or a synthesized HTTP status line.
type GenerationError struct {
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	return e.Message
}

func httpStatusMessage(code int) string {
	return fmt.Sprintf("generation service returned HTTP %d %s", code, http.StatusText(code))
}
