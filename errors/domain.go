package errors

import "errors"

// DomainError is a rule violation on a single field of a domain value,
// e.g. a CPF with wrong check digits. It adapts to a validation error.
type DomainError struct {
	Field  string
	Reason string
}

func (e DomainError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func NewDomainError(field, reason string) error {
	return DomainError{Field: field, Reason: reason}
}

// AsDomain extracts a DomainError from err's chain.
func AsDomain(err error) (DomainError, bool) {
	var de DomainError
	ok := errors.As(err, &de)
	return de, ok
}
