// Package people is a client for the people REST API.
package people

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	errs "github.com/vortex-fintech/people/errors"
	"github.com/vortex-fintech/people/logger"
	"github.com/vortex-fintech/people/logutil"
	"github.com/vortex-fintech/people/metrics"
	"github.com/vortex-fintech/people/netutil"
	"github.com/vortex-fintech/people/person"
	"github.com/vortex-fintech/people/retry"
)

const (
	DefaultBaseURL = "http://localhost:8000/api"
	DefaultTimeout = 10 * time.Second
	MinTimeout     = 100 * time.Millisecond

	HeaderRequestID = "X-Request-ID"

	routeCollection = "/people/"
	routeItem       = "/people/{id}/"

	getManyLimit    = 4
	maxResponseBody = 1 << 20
)

// Client talks to the people API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logger.LoggerInterface
	metrics *metrics.ClientMetrics
	retry   bool
	cache   Cache
}

// New returns a client for baseURL ("" means DefaultBaseURL).
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: base,
		timeout: DefaultTimeout,
		log:     logger.Nop(),
		retry:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: netutil.SanitizeTimeout(c.timeout, MinTimeout, DefaultTimeout)}
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// List returns every record in backend order. Both a bare JSON array and a
// paginated {"results": [...]} body are accepted.
func (c *Client) List(ctx context.Context) ([]person.Person, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, routeCollection, routeCollection, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList(raw)
}

// Latest returns at most one record: the most recently created one.
func (c *Client) Latest(ctx context.Context) ([]person.Person, error) {
	list, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	return person.Latest(list), nil
}

func (c *Client) Get(ctx context.Context, id string) (person.Person, error) {
	id, path, err := itemPath(id)
	if err != nil {
		return person.Person{}, err
	}

	if c.cache != nil {
		p, ok, cerr := c.cache.Get(ctx, id)
		switch {
		case cerr != nil:
			c.log.WarnwCtx(ctx, "people cache get failed", "id", id, "error", cerr)
		case ok:
			return p, nil
		}
	}

	var p person.Person
	if err := c.do(ctx, http.MethodGet, routeItem, path, nil, &p); err != nil {
		return person.Person{}, err
	}

	if c.cache != nil {
		if cerr := c.cache.Set(ctx, p); cerr != nil {
			c.log.WarnwCtx(ctx, "people cache set failed", "id", id, "error", cerr)
		}
	}
	return p, nil
}

// GetMany fetches ids concurrently and returns them in the same order.
// The first failure cancels the remaining requests.
func (c *Client) GetMany(ctx context.Context, ids []string) ([]person.Person, error) {
	out := make([]person.Person, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(getManyLimit)
	for i, id := range ids {
		g.Go(func() error {
			p, err := c.Get(gctx, id)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create validates in and posts it. Creation is never retried.
func (c *Client) Create(ctx context.Context, in person.Input) (person.Person, error) {
	if err := in.Validate(); err != nil {
		return person.Person{}, err
	}
	var p person.Person
	if err := c.do(ctx, http.MethodPost, routeCollection, routeCollection, in, &p); err != nil {
		return person.Person{}, err
	}
	return p, nil
}

func (c *Client) Update(ctx context.Context, id string, in person.Input) (person.Person, error) {
	id, path, err := itemPath(id)
	if err != nil {
		return person.Person{}, err
	}
	if err := in.Validate(); err != nil {
		return person.Person{}, err
	}

	var p person.Person
	err = c.do(ctx, http.MethodPut, routeItem, path, in, &p)
	c.invalidate(ctx, id)
	if err != nil {
		return person.Person{}, err
	}
	return p, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	id, path, err := itemPath(id)
	if err != nil {
		return err
	}
	err = c.do(ctx, http.MethodDelete, routeItem, path, nil, nil)
	c.invalidate(ctx, id)
	return err
}

func (c *Client) invalidate(ctx context.Context, id string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, id); err != nil {
		c.log.WarnwCtx(ctx, "people cache delete failed", "id", id, "error", err)
	}
}

// do sends one logical request. GET, PUT and DELETE are retried on
// transport errors and retryable statuses when retries are enabled.
func (c *Client) do(ctx context.Context, method, route, path string, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errs.Internal().WithReason("encode_failed")
		}
		payload = b
	}

	call := func() error {
		return c.send(ctx, method, route, path, payload, out)
	}
	if !c.retry || method == http.MethodPost {
		return retry.Unwrap(call())
	}
	return retry.RetryFast(ctx, call)
}

// send performs a single HTTP exchange. Errors that must not be retried are
// wrapped with retry.Permanent.
func (c *Client) send(ctx context.Context, method, route, path string, payload []byte, out any) error {
	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return retry.Permanent(errs.Internal().WithReason("bad_request").WithDetail("error", err.Error()))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		c.metrics.Observe(method, route, 0, elapsed)
		if cerr := ctx.Err(); cerr != nil {
			return retry.Permanent(errs.ToErrorResponse(cerr))
		}
		c.log.WarnwCtx(ctx, "people request failed",
			"method", method, "route", route, "duration", elapsed, "error", err)
		return errs.Unavailable().
			WithReason("connection_failed").
			WithDetail("error", err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	elapsed := time.Since(start)
	c.metrics.Observe(method, route, resp.StatusCode, elapsed)
	if err != nil {
		c.log.WarnwCtx(ctx, "people response read failed",
			"method", method, "route", route, "status", resp.StatusCode, "error", err)
		return errs.Unavailable().
			WithReason("connection_failed").
			WithDetail("error", err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WarnwCtx(ctx, "people request rejected",
			"method", method, "route", route, "status", resp.StatusCode,
			"duration", elapsed, "body", logutil.RedactCPF(string(raw)))
		e := errs.FromHTTPResponse(resp.StatusCode, raw)
		if errs.IsRetryableHTTP(resp.StatusCode) {
			return e
		}
		return retry.Permanent(e)
	}

	c.log.DebugwCtx(ctx, "people request",
		"method", method, "route", route, "status", resp.StatusCode, "duration", elapsed)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return retry.Permanent(errs.Internal().
			WithReason("invalid_response").
			WithDetail("error", err.Error()))
	}
	return nil
}

func decodeList(raw json.RawMessage) ([]person.Person, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []person.Person{}, nil
	}

	var list []person.Person
	if trimmed[0] == '{' {
		var page struct {
			Results []person.Person `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, errs.Internal().WithReason("invalid_response").WithDetail("error", err.Error())
		}
		list = page.Results
	} else if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, errs.Internal().WithReason("invalid_response").WithDetail("error", err.Error())
	}
	if list == nil {
		list = []person.Person{}
	}
	return list, nil
}

// itemPath trims raw and returns it with its escaped item route. Callers key
// the cache by the returned id so it matches the record the backend echoes.
func itemPath(raw string) (id, path string, err error) {
	id = strings.TrimSpace(raw)
	if id == "" {
		return "", "", errs.InvalidArgument().WithReason("id_required")
	}
	return id, routeCollection + url.PathEscape(id) + "/", nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errs.InvalidArgument().WithReason("invalid_base_url").WithDetail("base_url", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
