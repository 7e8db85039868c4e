// Package redis opens the go-redis connection backing the people cache.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 3 * time.Second

var (
	ErrAddrRequired = errors.New("redis: address is required")
	ErrInvalidDB    = errors.New("redis: db must be >= 0")
)

// Config describes a single-node Redis. Zero timeouts and pool size keep
// the go-redis defaults.
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	TLS bool
}

// Options validates c and converts it to go-redis options.
func (c Config) Options() (*goredis.Options, error) {
	addr := strings.TrimSpace(c.Addr)
	switch {
	case addr == "":
		return nil, ErrAddrRequired
	case c.DB < 0:
		return nil, ErrInvalidDB
	}

	opt := &goredis.Options{
		Addr:         addr,
		DB:           c.DB,
		Username:     c.Username,
		Password:     c.Password,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		PoolSize:     c.PoolSize,
	}
	if c.TLS {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opt, nil
}

// Connect opens a client and pings it. The client is closed again when the
// ping fails.
func Connect(ctx context.Context, c Config) (*goredis.Client, error) {
	opt, err := c.Options()
	if err != nil {
		return nil, err
	}
	rdb := goredis.NewClient(opt)

	timeout := c.DialTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opt.Addr, err)
	}
	return rdb, nil
}
