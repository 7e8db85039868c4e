package form

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	errs "github.com/vortex-fintech/people/errors"
	"github.com/vortex-fintech/people/logger"
	"github.com/vortex-fintech/people/person"
)

type fakeAPI struct {
	mu      sync.Mutex
	people  []person.Person
	calls   []string
	listErr error
	saveErr error
	delErr  error
	nextID  int
}

func (f *fakeAPI) List(context.Context) ([]person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]person.Person(nil), f.people...), nil
}

func (f *fakeAPI) Create(_ context.Context, in person.Input) (person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create")
	if f.saveErr != nil {
		return person.Person{}, f.saveErr
	}
	f.nextID++
	p := person.Person{ID: string(rune('0' + f.nextID)), Name: in.Name, BirthDate: in.BirthDate, CPF: in.CPF}
	f.people = append(f.people, p)
	return p, nil
}

func (f *fakeAPI) Update(_ context.Context, id string, in person.Input) (person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update:"+id)
	if f.saveErr != nil {
		return person.Person{}, f.saveErr
	}
	for i, p := range f.people {
		if p.ID == id {
			f.people[i] = person.Person{ID: id, Name: in.Name, BirthDate: in.BirthDate, CPF: in.CPF}
			return f.people[i], nil
		}
	}
	return person.Person{}, errs.FromHTTPResponse(http.StatusNotFound, nil)
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete:"+id)
	if f.delErr != nil {
		return f.delErr
	}
	for i, p := range f.people {
		if p.ID == id {
			f.people = append(f.people[:i], f.people[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func fillForm(ctx context.Context, c *Controller, name, birth, cpf string) {
	c.Dispatch(ctx, NameChanged{Value: name})
	c.Dispatch(ctx, BirthDateChanged{Value: birth})
	c.Dispatch(ctx, CPFChanged{Value: cpf})
}

func TestControllerCreateAndReload(t *testing.T) {
	api := &fakeAPI{people: []person.Person{{ID: "0", Name: "Old"}}}
	c := NewController(api, nil)
	ctx := context.Background()

	fillForm(ctx, c, "Ana", "1990-02-03", "52998224725")
	assert.Equal(t, "529.982.247-25", c.State().CPF)

	s := c.Dispatch(ctx, SubmitRequested{})
	assert.Empty(t, s.Error)
	assert.Empty(t, s.Name)
	assert.Empty(t, s.CPF)
	require.Len(t, s.People, 1)
	assert.Equal(t, "Ana", s.People[0].Name)
	assert.Equal(t, "52998224725", s.People[0].CPF)
	assert.Equal(t, []string{"create", "list"}, api.Calls())
}

func TestControllerEditAndUpdate(t *testing.T) {
	api := &fakeAPI{people: []person.Person{ana}}
	c := NewController(api, nil)
	ctx := context.Background()

	c.Dispatch(ctx, LoadRequested{})
	s := c.Dispatch(ctx, EditRequested{Person: ana})
	assert.Equal(t, "529.982.247-25", s.CPF)

	c.Dispatch(ctx, NameChanged{Value: "Ana Maria"})
	s = c.Dispatch(ctx, SubmitRequested{})
	assert.False(t, s.Editing())
	assert.Equal(t, []person.Person{{ID: "1", Name: "Ana Maria", BirthDate: "1990-02-03", CPF: "52998224725"}}, s.People)
	assert.Equal(t, []string{"list", "update:1", "list"}, api.Calls())
}

func TestControllerSavedIsTheEditedRecord(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	api := &fakeAPI{people: []person.Person{ana, bruno}}
	c := NewController(api, logger.FromZap(zap.New(core)))
	ctx := context.Background()

	c.Dispatch(ctx, EditRequested{Person: ana})
	c.Dispatch(ctx, NameChanged{Value: "Ana Maria"})
	s := c.Dispatch(ctx, SubmitRequested{})

	require.Empty(t, s.Error)
	assert.Equal(t, person.Person{ID: "1", Name: "Ana Maria", BirthDate: "1990-02-03", CPF: "52998224725"}, s.Saved)
	assert.Equal(t, []person.Person{bruno}, s.People)

	entries := logs.FilterMessage("person saved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "***.***.***-25", entries[0].ContextMap()["cpf"])
}

func TestControllerValidationStopsBeforeAPI(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(api, nil)
	ctx := context.Background()

	s := c.Dispatch(ctx, SubmitRequested{})
	assert.Equal(t, MsgRequiredFields, s.Error)

	fillForm(ctx, c, "Ana", "1990-02-03", "111.111.111-11")
	s = c.Dispatch(ctx, SubmitRequested{})
	assert.Equal(t, MsgInvalidCPF, s.Error)
	assert.Empty(t, api.Calls())
}

func TestControllerSaveFailure(t *testing.T) {
	api := &fakeAPI{saveErr: errs.FromHTTPResponse(400, []byte(`{"cpf":["exists"]}`))}
	c := NewController(api, nil)
	ctx := context.Background()

	fillForm(ctx, c, "Ana", "1990-02-03", "52998224725")
	s := c.Dispatch(ctx, SubmitRequested{})
	assert.Equal(t, `{"cpf":["exists"]}`, s.Error)
	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, []string{"create"}, api.Calls())

	api.saveErr = errs.Unavailable().WithReason("connection_failed")
	s = c.Dispatch(ctx, SubmitRequested{})
	assert.Equal(t, MsgConnectionError, s.Error)
}

func TestControllerDelete(t *testing.T) {
	api := &fakeAPI{people: []person.Person{ana, bruno}}
	c := NewController(api, nil)
	ctx := context.Background()

	s := c.Dispatch(ctx, DeleteRequested{ID: "2"})
	assert.Equal(t, []person.Person{ana}, s.People)
	assert.Equal(t, []string{"delete:2", "list"}, api.Calls())

	api.delErr = errors.New("connection reset")
	s = c.Dispatch(ctx, DeleteRequested{ID: "1"})
	assert.Equal(t, MsgDeleteError, s.Error)
}

func TestControllerLoadFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	api := &fakeAPI{listErr: errors.New("list 529.982.247-25 failed")}
	c := NewController(api, logger.FromZap(zap.New(core)))

	s := c.Dispatch(context.Background(), LoadRequested{})
	assert.Empty(t, s.Error)
	assert.Nil(t, s.People)

	entries := logs.FilterMessage("load people failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "list ***.***.***-25 failed", entries[0].ContextMap()["error"])
}

func TestControllerConcurrentDispatch(t *testing.T) {
	api := &fakeAPI{people: []person.Person{ana}}
	c := NewController(api, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Dispatch(ctx, LoadRequested{})
			c.Dispatch(ctx, CPFChanged{Value: "52998224725"})
		}()
	}
	wg.Wait()

	s := c.State()
	assert.Equal(t, []person.Person{ana}, s.People)
	assert.Equal(t, "529.982.247-25", s.CPF)
	assert.Len(t, api.Calls(), 20)
}
