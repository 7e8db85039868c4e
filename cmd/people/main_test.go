package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortex-fintech/people/form"
	"github.com/vortex-fintech/people/person"
	"github.com/vortex-fintech/people/timeutil"
)

type fakeBackend struct {
	mu     sync.Mutex
	people []person.Person
	bodies []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	if len(body) > 0 {
		b.bodies = append(b.bodies, string(body))
	}
	w.Header().Set("Content-Type", "application/json")
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/people"), "/")

	switch {
	case r.Method == http.MethodGet && id == "":
		_ = json.NewEncoder(w).Encode(b.people)
	case r.Method == http.MethodGet:
		for _, p := range b.people {
			if p.ID == id {
				_ = json.NewEncoder(w).Encode(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	case r.Method == http.MethodPost:
		var in person.Input
		_ = json.Unmarshal(body, &in)
		p := person.Person{ID: "9", Name: in.Name, BirthDate: in.BirthDate, CPF: in.CPF}
		b.people = append(b.people, p)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodPut:
		var in person.Input
		_ = json.Unmarshal(body, &in)
		for i, p := range b.people {
			if p.ID == id {
				b.people[i] = person.Person{ID: id, Name: in.Name, BirthDate: in.BirthDate, CPF: in.CPF}
				_ = json.NewEncoder(w).Encode(b.people[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithStderr(t, args...)
	return out, err
}

func runWithStderr(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PEOPLE_API_RETRY", "false")

	var out, errOut bytes.Buffer
	a := newApp(timeutil.Fixed(time.Date(2025, 2, 2, 12, 0, 0, 0, time.UTC)))
	a.root.SetOut(&out)
	a.root.SetErr(&errOut)
	a.root.SetArgs(append([]string{"--env", "production"}, args...))
	err = a.execute(context.Background())
	return out.String(), errOut.String(), err
}

func newServer(t *testing.T, people ...person.Person) (*fakeBackend, string) {
	t.Helper()
	b := &fakeBackend{people: people}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv.URL + "/api"
}

var ana = person.Person{ID: "1", Name: "Ana", BirthDate: "1990-02-03", CPF: "52998224725"}

func TestFormatCommand(t *testing.T) {
	out, err := run(t, "format", "5299822")
	require.NoError(t, err)
	assert.Equal(t, "529.982.2\n", out)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	out, err = run(t, "validate", "529.982.247-24")
	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "invalid\n", out)
}

func TestListCommand(t *testing.T) {
	bruno := person.Person{ID: "2", Name: "Bruno", BirthDate: "1985-07-10", CPF: "11144477735"}
	_, url := newServer(t, ana, bruno)

	out, err := run(t, "--base-url", url, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NOME", "NASCIMENTO", "IDADE", "CPF"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "Ana", "1990-02-03", "34", "529.982.247-25"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "Bruno", "1985-07-10", "39", "111.444.777-35"}, strings.Fields(lines[2]))

	out, err = run(t, "--base-url", url, "latest", "--json")
	require.NoError(t, err)
	var got []person.Person
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []person.Person{bruno}, got)
}

func TestGetCommand(t *testing.T) {
	_, url := newServer(t, ana)

	out, err := run(t, "--base-url", url, "get", "1", "--json")
	require.NoError(t, err)
	var got []person.Person
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []person.Person{ana}, got)

	_, err = run(t, "--base-url", url, "get", "404")
	assert.Error(t, err)
}

func TestCreateCommand(t *testing.T) {
	b, url := newServer(t)

	out, err := run(t, "--base-url", url, "create", "--name", "Carla", "--birth-date", "2000-01-01", "--cpf", "111.444.777-35")
	require.NoError(t, err)
	assert.Contains(t, out, "Registro salvo.")
	assert.Contains(t, out, "Carla")
	require.Len(t, b.bodies, 1)
	assert.JSONEq(t, `{"name":"Carla","birth_date":"2000-01-01","cpf":"11144477735"}`, b.bodies[0])
}

func TestCreateCommandReportsFormErrors(t *testing.T) {
	b, url := newServer(t)

	_, err := run(t, "--base-url", url, "create", "--name", "Carla")
	require.Error(t, err)
	assert.Equal(t, form.MsgRequiredFields, err.Error())

	_, err = run(t, "--base-url", url, "create", "--name", "Carla", "--birth-date", "2000-01-01", "--cpf", "11144477734")
	require.Error(t, err)
	assert.Equal(t, form.MsgInvalidCPF, err.Error())
	assert.Empty(t, b.bodies)
}

func TestUpdateCommandPrintsSavedRecord(t *testing.T) {
	bruno := person.Person{ID: "2", Name: "Bruno", BirthDate: "1985-07-10", CPF: "11144477735"}
	_, url := newServer(t, ana, bruno)

	out, err := run(t, "--base-url", url, "update", "1", "--name", "Ana Maria", "--birth-date", "1990-02-03", "--cpf", "52998224725")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Registro atualizado.", lines[0])
	assert.Equal(t, []string{"1", "Ana", "Maria", "1990-02-03", "34", "529.982.247-25"}, strings.Fields(lines[2]))
	assert.NotContains(t, out, "Bruno")
}

func TestMetricsDumpedWhenCommandFails(t *testing.T) {
	_, url := newServer(t, ana)

	_, stderr, err := runWithStderr(t, "--base-url", url, "--metrics", "get", "404")
	require.Error(t, err)
	assert.Contains(t, stderr, "people_client_requests_total")
	assert.Contains(t, stderr, `status="404"`)
}

func TestDeleteCommand(t *testing.T) {
	_, url := newServer(t, ana)
	out, err := run(t, "--base-url", url, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Registro excluído.\n", out)
}

func TestInvalidBaseURL(t *testing.T) {
	_, err := run(t, "--base-url", "not a url", "list")
	assert.Error(t, err)
}
