package errors

import (
	"strings"

	play "github.com/go-playground/validator/v10"
)

// FromPlayground turns go-playground validation errors into a validation
// error with one violation per field. tagToReason maps validator tags to
// reasons; unmapped tags become "invalid". Field paths are relative to the
// validated struct and use the validator's registered tag names.
func FromPlayground(ves play.ValidationErrors, tagToReason map[string]string) ErrorResponse {
	violations := make([]FieldViolation, len(ves))
	fields := make(map[string]string, len(ves))

	for i, fe := range ves {
		reason, ok := tagToReason[fe.Tag()]
		if !ok {
			reason = "invalid"
		}
		field := fe.Field()
		if _, rest, found := strings.Cut(fe.Namespace(), "."); found && rest != "" {
			field = rest
		}

		fields[field] = reason
		violations[i] = FieldViolation{
			Field:       field,
			Reason:      reason,
			Description: "failed on the '" + fe.Tag() + "' rule",
		}
	}
	return ValidationViolations(violations).WithDetails(fields)
}
