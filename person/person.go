// Package person holds the person record exchanged with the people API and
// the rules applied to it before it is sent.
package person

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/vortex-fintech/people/cpf"
	errs "github.com/vortex-fintech/people/errors"
	"github.com/vortex-fintech/people/textutil"
	"github.com/vortex-fintech/people/timeutil"
	"github.com/vortex-fintech/people/validator"
)

// MaxNameRunes bounds the name field.
const MaxNameRunes = 255

// Person is a record as returned by the backend. CPF holds bare digits.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	CPF       string `json:"cpf"`
}

// UnmarshalJSON accepts the id as a JSON string or number.
func (p *Person) UnmarshalJSON(b []byte) error {
	type plain Person
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Person(aux.plain)

	raw := bytes.TrimSpace(aux.ID)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		p.ID = ""
	case raw[0] == '"':
		return json.Unmarshal(raw, &p.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return err
		}
		p.ID = n.String()
	}
	return nil
}

func (p Person) FormattedCPF() string { return cpf.Format(p.CPF) }
func (p Person) MaskedCPF() string    { return cpf.Mask(p.CPF) }

// Age returns the person's age in whole years at now.
func (p Person) Age(now time.Time) (int, error) {
	return Age(p.BirthDate, now)
}

// Input is the body of create and update requests.
type Input struct {
	Name      string `json:"name" validate:"required,max=255"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	CPF       string `json:"cpf" validate:"required,cpf"`
}

// NewInput normalizes raw form values: the name goes through
// textutil.Collapse and the CPF is reduced to its digits.
func NewInput(name, birthDate, rawCPF string) Input {
	return Input{
		Name:      textutil.Collapse(name),
		BirthDate: strings.TrimSpace(birthDate),
		CPF:       cpf.Digits(rawCPF),
	}
}

// Validate checks the input and returns an errors.ErrorResponse with one
// violation per bad field, or nil.
func (in Input) Validate() error {
	return validator.Check(in)
}

// Age returns whole years between a YYYY-MM-DD birth date and now.
func Age(birthDate string, now time.Time) (int, error) {
	born, err := timeutil.ParseDate(strings.TrimSpace(birthDate))
	if err != nil {
		return 0, errs.NewDomainError("birth_date", "invalid_date")
	}
	if !timeutil.IsNotFutureUTC(now, born) {
		return 0, errs.NewDomainError("birth_date", "in_future")
	}
	return timeutil.YearsBetween(born, now), nil
}

// Latest keeps only the most recently created record, which is the last one
// in the backend's listing order. The "latest registration" view shows just that.
func Latest(list []Person) []Person {
	if len(list) == 0 {
		return []Person{}
	}
	return []Person{list[len(list)-1]}
}
