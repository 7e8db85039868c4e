// Package form models the person registration form as an immutable State
// advanced by a pure Reduce function. Side effects are returned as values
// and executed by a Controller.
package form

import (
	"strings"

	"github.com/vortex-fintech/people/person"
)

// User-facing messages.
const (
	MsgRequiredFields  = "Todos os campos são obrigatórios."
	MsgInvalidCPF      = "CPF inválido."
	MsgInvalidData     = "Dados inválidos: "
	MsgConnectionError = "Erro de conexão com o servidor."
	MsgDeleteError     = "Erro ao excluir registro."
)

// State is a snapshot of the form. CPF holds the masked value as typed.
// People is never mutated in place.
type State struct {
	Name      string
	BirthDate string
	CPF       string
	EditingID string
	Error     string
	People    []person.Person

	// Saved is the record returned by the last successful save.
	Saved person.Person
}

func (s State) Editing() bool { return s.EditingID != "" }

// Input is the request body the current fields would produce.
func (s State) Input() person.Input {
	return person.NewInput(s.Name, s.BirthDate, s.CPF)
}

func (s State) missingField() bool {
	return strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.BirthDate) == "" ||
		strings.TrimSpace(s.CPF) == ""
}

func (s State) clearFields() State {
	s.Name, s.BirthDate, s.CPF, s.EditingID = "", "", "", ""
	return s
}
