package errors

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"google.golang.org/grpc/codes"
)

const (
	statusClientClosedRequest = 499

	// maxBodyDetail caps how much of a backend error body is kept in Details.
	maxBodyDetail = 4096
)

// FromHTTPStatus maps a backend HTTP status to the closest gRPC code.
func FromHTTPStatus(status int) codes.Code {
	switch {
	case status >= 200 && status < 300:
		return codes.OK
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case status == http.StatusUnauthorized:
		return codes.Unauthenticated
	case status == http.StatusForbidden:
		return codes.PermissionDenied
	case status == http.StatusNotFound:
		return codes.NotFound
	case status == http.StatusConflict:
		return codes.AlreadyExists
	case status == http.StatusPreconditionFailed:
		return codes.FailedPrecondition
	case status == http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case status == statusClientClosedRequest:
		return codes.Canceled
	case status == http.StatusNotImplemented:
		return codes.Unimplemented
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable:
		return codes.Unavailable
	case status == http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	case status >= 500:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// FromHTTPResponse builds an error for a non-2xx backend answer. The raw body
// is kept in Details["body"] so callers can show what the backend said.
func FromHTTPResponse(status int, body []byte) ErrorResponse {
	msg := http.StatusText(status)
	if msg == "" {
		msg = "HTTP " + strconv.Itoa(status)
	}
	e := New(msg, FromHTTPStatus(status), nil).
		WithReason("backend_error").
		WithDetail("http_status", strconv.Itoa(status))
	if b := truncateBody(body); b != "" {
		e = e.WithDetail("body", b)
	}
	return e
}

// IsRetryableHTTP reports whether a response with this status is worth retrying.
func IsRetryableHTTP(status int) bool {
	return status == http.StatusTooManyRequests ||
		status == http.StatusBadGateway ||
		status == http.StatusServiceUnavailable ||
		status == http.StatusGatewayTimeout ||
		status == http.StatusInternalServerError
}

func truncateBody(b []byte) string {
	if len(b) <= maxBodyDetail {
		return string(b)
	}
	b = b[:maxBodyDetail]
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return string(b)
}
