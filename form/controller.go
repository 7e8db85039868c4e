package form

import (
	"context"
	"sync"

	"github.com/vortex-fintech/people/logger"
	"github.com/vortex-fintech/people/logutil"
	"github.com/vortex-fintech/people/person"
)

// PeopleAPI is the backend the controller talks to. *people.Client implements it.
type PeopleAPI interface {
	List(ctx context.Context) ([]person.Person, error)
	Create(ctx context.Context, in person.Input) (person.Person, error)
	Update(ctx context.Context, id string, in person.Input) (person.Person, error)
	Delete(ctx context.Context, id string) error
}

// Controller owns the current State and runs the effects Reduce returns.
// It is safe for concurrent use; dispatches are serialized.
type Controller struct {
	mu    sync.Mutex
	state State
	api   PeopleAPI
	log   logger.LoggerInterface
}

func NewController(api PeopleAPI, log logger.LoggerInterface) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{api: api, log: log}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a and then every follow-up action produced by effects,
// returning the resulting state.
func (c *Controller) Dispatch(ctx context.Context, a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	for a != nil {
		var eff Effect
		c.state, eff = Reduce(c.state, a)
		if eff == nil {
			break
		}
		a = c.run(ctx, eff)
	}
	return c.state
}

func (c *Controller) run(ctx context.Context, eff Effect) Action {
	switch e := eff.(type) {
	case Save:
		var (
			p   person.Person
			err error
		)
		if e.ID == "" {
			p, err = c.api.Create(ctx, e.Input)
		} else {
			p, err = c.api.Update(ctx, e.ID, e.Input)
		}
		if err != nil {
			c.log.WarnwCtx(ctx, "save person failed", "id", e.ID, "error", redact(err))
			return RequestFailed{Err: err, Fallback: MsgConnectionError}
		}
		c.log.InfowCtx(ctx, "person saved", "id", p.ID, "cpf", p.MaskedCPF())
		return SaveSucceeded{Person: p}

	case Remove:
		if err := c.api.Delete(ctx, e.ID); err != nil {
			c.log.WarnwCtx(ctx, "delete person failed", "id", e.ID, "error", redact(err))
			return RequestFailed{Err: err, Fallback: MsgDeleteError}
		}
		return DeleteSucceeded{}

	case Reload:
		list, err := c.api.List(ctx)
		if err != nil {
			c.log.ErrorwCtx(ctx, "load people failed", "error", redact(err))
			return LoadFailed{Err: err}
		}
		return Loaded{People: list}
	}
	return nil
}

func redact(err error) string {
	return logutil.RedactCPF(err.Error())
}
