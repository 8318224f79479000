package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// TransientError marks a provider failure worth retrying.
type TransientError struct {
	Err        error
	StatusCode int
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// NewTransientError marks err as transient. statusCode is 0 for failures
// below HTTP.
func NewTransientError(err error, statusCode int) *TransientError {
	return &TransientError{Err: err, StatusCode: statusCode}
}

// retryableStatus lists the HTTP statuses an overloaded or restarting
// provider answers with.
var retryableStatus = map[int]bool{
	408: true,
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
	529: true, // Anthropic "overloaded"
}

// FromStatus marks err as transient when statusCode is retryable and
// returns other errors unchanged.
func FromStatus(err error, statusCode int) error {
	if err == nil || !retryableStatus[statusCode] {
		return err
	}
	return NewTransientError(err, statusCode)
}

// IsTransient reports whether err is a marked TransientError, a network
// timeout, or a dropped or refused connection. A local Ollama that is still
// starting up refuses connections.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "i/o timeout")
}
