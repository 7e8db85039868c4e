package errors

import "google.golang.org/grpc/codes"

const ReasonValidationFailed = "validation_failed"

func preset(code codes.Code, reason, message string) ErrorResponse {
	return New(message, code, nil).WithReason(reason)
}

func Canceled() ErrorResponse {
	return preset(codes.Canceled, "canceled", "Request canceled")
}

func DeadlineExceeded() ErrorResponse {
	return preset(codes.DeadlineExceeded, "deadline_exceeded", "Deadline exceeded")
}

func InvalidArgument() ErrorResponse {
	return preset(codes.InvalidArgument, "invalid_argument", "Invalid argument")
}

func Internal() ErrorResponse {
	return preset(codes.Internal, "internal", "Internal error")
}

// Unavailable is returned when the people API cannot be reached.
func Unavailable() ErrorResponse {
	return preset(codes.Unavailable, "unavailable", "Service unavailable")
}

// ValidationFields builds an InvalidArgument error from field -> reason.
func ValidationFields(fields map[string]string) ErrorResponse {
	return ValidationViolations(ViolationsFromMap(fields)).WithDetails(fields)
}

func ValidationViolations(v []FieldViolation) ErrorResponse {
	return InvalidArgument().WithReason(ReasonValidationFailed).WithViolations(v)
}

func ToValidation(field, reason string) ErrorResponse {
	return ValidationFields(map[string]string{field: reason})
}
