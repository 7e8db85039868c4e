package errors

import (
	"context"
	"errors"
)

// ToErrorResponse converts any error into an ErrorResponse: ErrorResponse
// values pass through, context errors map to Canceled/DeadlineExceeded, a
// DomainError becomes a validation error, anything else is Internal with
// reason "unexpected_error".
func ToErrorResponse(err error) ErrorResponse {
	switch {
	case err == nil:
		return Internal().WithReason("unexpected_error")
	case errors.Is(err, context.Canceled):
		return Canceled()
	case errors.Is(err, context.DeadlineExceeded):
		return DeadlineExceeded()
	}

	if e, ok := As(err); ok {
		return e
	}
	if de, ok := AsDomain(err); ok {
		if de.Field == "" {
			return InvalidArgument().WithReason(de.Reason)
		}
		return ToValidation(de.Field, de.Reason)
	}
	return Internal().WithReason("unexpected_error")
}

// As extracts an ErrorResponse, held by value or pointer, from err's chain.
func As(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}
	var ev ErrorResponse
	if errors.As(err, &ev) {
		return ev, true
	}
	var ep *ErrorResponse
	if errors.As(err, &ep) && ep != nil {
		return *ep, true
	}
	return ErrorResponse{}, false
}
