// Package config reads client settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vortex-fintech/people/netutil"
)

const (
	DefaultBaseURL  = "http://localhost:8000/api"
	DefaultTimeout  = 10 * time.Second
	MinTimeout      = 100 * time.Millisecond
	DefaultEnv      = "development"
	DefaultCacheTTL = 5 * time.Minute
)

type Config struct {
	Env   string
	API   API
	Redis Redis
}

type API struct {
	BaseURL string
	Timeout time.Duration
	Retry   bool
}

// Redis configures the optional record cache. An empty Addr disables it.
type Redis struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

func (r Redis) Enabled() bool { return r.Addr != "" }

// Load reads .env from the working directory or its parents, then the environment.
// Variables already set in the environment win over .env.
func Load() (*Config, error) {
	LoadDotEnvUp(0)
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, reporting every invalid variable.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	r := reader{lookup: lookup}

	cfg := &Config{
		Env: strings.ToLower(r.str("APP_ENV", DefaultEnv)),
		API: API{
			BaseURL: strings.TrimRight(r.str("PEOPLE_API_BASE_URL", DefaultBaseURL), "/"),
			Timeout: netutil.SanitizeTimeout(r.duration("PEOPLE_API_TIMEOUT", DefaultTimeout), MinTimeout, DefaultTimeout),
			Retry:   r.bool("PEOPLE_API_RETRY", true),
		},
		Redis: Redis{
			Addr:     r.str("REDIS_ADDR", ""),
			Password: r.str("REDIS_PASSWORD", ""),
			DB:       r.int("REDIS_DB", 0),
			CacheTTL: r.duration("PEOPLE_CACHE_TTL", DefaultCacheTTL),
		},
	}

	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		r.fail("PEOPLE_API_BASE_URL", cfg.API.BaseURL, errors.New("must be an absolute http(s) URL"))
	}
	if cfg.Redis.DB < 0 {
		r.fail("REDIS_DB", strconv.Itoa(cfg.Redis.DB), errors.New("must be >= 0"))
	}
	if cfg.Redis.CacheTTL <= 0 {
		r.fail("PEOPLE_CACHE_TTL", cfg.Redis.CacheTTL.String(), errors.New("must be positive"))
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) fail(key, val string, err error) {
	r.errs = append(r.errs, fmt.Errorf("config: %s=%q: %w", key, val, err))
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *reader) int(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *reader) bool(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}
