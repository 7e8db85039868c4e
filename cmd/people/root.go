package main

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/vortex-fintech/people/config"
	dbredis "github.com/vortex-fintech/people/db/redis"
	"github.com/vortex-fintech/people/logger"
	"github.com/vortex-fintech/people/metrics"
	"github.com/vortex-fintech/people/people"
	"github.com/vortex-fintech/people/retry"
	"github.com/vortex-fintech/people/timeutil"
)

const redisConnectTimeout = 2 * time.Second

// errReported means the command already told the user what went wrong.
var errReported = errors.New("reported")

type app struct {
	root  *cobra.Command
	cfg   *config.Config
	log   *logger.Logger
	reg   *prometheus.Registry
	clock timeutil.Clock

	baseURL     string
	timeout     time.Duration
	env         string
	jsonOut     bool
	dumpMetrics bool

	closers []func()
}

func newApp(clock timeutil.Clock) *app {
	a := &app{clock: clock}
	a.root = a.rootCmd()
	return a
}

// execute runs the command line. Teardown runs even when the command
// fails, since cobra skips post-run hooks after an error.
func (a *app) execute(ctx context.Context) error {
	defer a.teardown()
	return a.root.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "people",
		Short:         "Manage person records of the people API",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.baseURL, "base-url", "", "people API base URL (overrides PEOPLE_API_BASE_URL)")
	pf.DurationVar(&a.timeout, "timeout", 0, "request timeout (overrides PEOPLE_API_TIMEOUT)")
	pf.StringVar(&a.env, "env", "", "logging environment: development, debug or production (overrides APP_ENV)")
	pf.BoolVar(&a.jsonOut, "json", false, "print records as JSON")
	pf.BoolVar(&a.dumpMetrics, "metrics", false, "print client metrics to stderr on exit")

	root.AddCommand(
		newListCmd(a),
		newLatestCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newFormatCmd(),
		newValidateCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.API.BaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = a.timeout
	}
	if flags.Changed("env") {
		cfg.Env = a.env
	}
	a.cfg = cfg

	l, err := logger.New("people", cfg.Env, logger.WithOutput(zapcore.AddSync(cmd.ErrOrStderr())))
	if err != nil {
		return err
	}
	a.log = l
	a.reg = prometheus.NewRegistry()
	return nil
}

func (a *app) teardown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil

	if a.dumpMetrics && a.reg != nil {
		mfs, err := a.reg.Gather()
		if err != nil && a.log != nil {
			a.log.Warnw("gather metrics failed", "error", err)
		}
		for _, mf := range mfs {
			_, _ = expfmt.MetricFamilyToText(a.root.ErrOrStderr(), mf)
		}
	}
	if a.log != nil {
		a.log.SafeSync()
	}
}

// client builds the API client, with the Redis cache when REDIS_ADDR is set.
// An unreachable Redis only disables the cache.
func (a *app) client(ctx context.Context) (*people.Client, error) {
	opts := []people.Option{
		people.WithTimeout(a.cfg.API.Timeout),
		people.WithRetry(a.cfg.API.Retry),
		people.WithLogger(a.log),
		people.WithMetrics(metrics.NewClientMetrics(a.reg)),
	}

	if a.cfg.Redis.Enabled() {
		cctx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		defer cancel()

		rcfg := dbredis.Config{
			Addr:        a.cfg.Redis.Addr,
			DB:          a.cfg.Redis.DB,
			Password:    a.cfg.Redis.Password,
			DialTimeout: redisConnectTimeout / 2,
		}
		err := retry.RetryInit(cctx, func() error {
			rdb, err := dbredis.Connect(cctx, rcfg)
			if errors.Is(err, dbredis.ErrAddrRequired) || errors.Is(err, dbredis.ErrInvalidDB) {
				return retry.Permanent(err)
			}
			if err != nil {
				return err
			}
			opts = append(opts, people.WithCache(people.NewRedisCache(rdb, a.cfg.Redis.CacheTTL)))
			a.closers = append(a.closers, func() { _ = rdb.Close() })
			return nil
		})
		if err != nil {
			a.log.Warnw("redis unavailable, cache disabled", "addr", a.cfg.Redis.Addr, "error", err)
		}
	}

	return people.New(a.cfg.API.BaseURL, opts...)
}
