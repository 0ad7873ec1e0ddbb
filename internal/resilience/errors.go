package resilience

import (
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
)

// StatusError is a failed HTTP exchange and its response status.
type StatusError struct {
	Err        error
	StatusCode int
}

func (e *StatusError) Error() string { return e.Err.Error() }

func (e *StatusError) Unwrap() error { return e.Err }

// FromHTTPStatus attaches the response status to err.
func FromHTTPStatus(err error, statusCode int) error {
	if err == nil {
		return nil
	}
	return &StatusError{Err: err, StatusCode: statusCode}
}

// IsTransient reports whether another attempt may succeed: a throttled,
// timed-out or 5xx response, a network timeout, or a dropped connection.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return retryableStatus(se.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
