package form

import (
	"sort"
	"strings"

	"github.com/vortex-fintech/people/cpf"
	errs "github.com/vortex-fintech/people/errors"
	"github.com/vortex-fintech/people/person"
)

// Reduce returns the state that follows s after a, and the effect to run,
// if any. It never performs I/O.
func Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case NameChanged:
		s.Name = a.Value
	case BirthDateChanged:
		s.BirthDate = a.Value
	case CPFChanged:
		s.CPF = cpf.Format(a.Value)

	case EditRequested:
		s.EditingID = a.Person.ID
		s.Name = a.Person.Name
		s.BirthDate = a.Person.BirthDate
		s.CPF = cpf.Format(a.Person.CPF)
		s.Error = ""

	case SubmitRequested:
		s.Error = ""
		if s.missingField() {
			s.Error = MsgRequiredFields
			return s, nil
		}
		if !cpf.IsValid(s.CPF) {
			s.Error = MsgInvalidCPF
			return s, nil
		}
		return s, Save{ID: s.EditingID, Input: s.Input()}

	case SaveSucceeded:
		s = s.clearFields()
		s.Saved = a.Person
		return s, Reload{}

	case RequestFailed:
		s.Error = failureMessage(a.Err, a.Fallback)

	case DeleteRequested:
		if a.ID == "" {
			return s, nil
		}
		return s, Remove{ID: a.ID}
	case DeleteSucceeded:
		return s, Reload{}

	case LoadRequested:
		return s, Reload{}
	case Loaded:
		s.People = person.Latest(a.People)
	case LoadFailed:
		// List stays as it was.
	}
	return s, nil
}

// failureMessage shows the backend response body when there is one, the
// offending fields for local validation errors, and fallback otherwise.
func failureMessage(err error, fallback string) string {
	e, ok := errs.As(err)
	if !ok {
		return fallback
	}
	if body := strings.TrimSpace(e.Detail("body")); body != "" {
		return body
	}
	if e.HasViolation("cpf", cpf.ReasonInvalid) {
		return MsgInvalidCPF
	}
	if len(e.Violations) > 0 {
		fields := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			fields = append(fields, v.Field)
		}
		sort.Strings(fields)
		return MsgInvalidData + strings.Join(fields, ", ") + "."
	}
	return fallback
}
