package form

import "github.com/vortex-fintech/people/person"

// Action is an input to Reduce.
type Action interface{ isAction() }

type (
	NameChanged      struct{ Value string }
	BirthDateChanged struct{ Value string }
	CPFChanged       struct{ Value string }

	// EditRequested loads a record into the form for updating.
	EditRequested struct{ Person person.Person }

	SubmitRequested struct{}

	// SaveSucceeded carries the record as the backend stored it.
	SaveSucceeded struct{ Person person.Person }

	// RequestFailed reports a failed save or delete. Fallback is shown when
	// the error carries no backend body.
	RequestFailed struct {
		Err      error
		Fallback string
	}

	DeleteRequested struct{ ID string }
	DeleteSucceeded struct{}

	LoadRequested struct{}
	Loaded        struct{ People []person.Person }
	LoadFailed    struct{ Err error }
)

func (NameChanged) isAction()      {}
func (BirthDateChanged) isAction() {}
func (CPFChanged) isAction()       {}
func (EditRequested) isAction()    {}
func (SubmitRequested) isAction()  {}
func (SaveSucceeded) isAction()    {}
func (RequestFailed) isAction()    {}
func (DeleteRequested) isAction()  {}
func (DeleteSucceeded) isAction()  {}
func (LoadRequested) isAction()    {}
func (Loaded) isAction()           {}
func (LoadFailed) isAction()       {}

// Effect is work Reduce asks the caller to perform.
type Effect interface{ isEffect() }

type (
	// Save creates a record when ID is empty and updates it otherwise.
	Save struct {
		ID    string
		Input person.Input
	}
	Reload struct{}
	Remove struct{ ID string }
)

func (Save) isEffect()   {}
func (Reload) isEffect() {}
func (Remove) isEffect() {}
