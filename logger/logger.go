// Package logger is a thin layer over zap's sugared logger with
// environment presets and request id propagation through context.
package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// Logger embeds the sugared logger, so the plain zap methods are available too.
type Logger struct {
	*zap.SugaredLogger
	// ctx variants log through here to skip their own frame.
	skip *zap.SugaredLogger
}

type options struct {
	out zapcore.WriteSyncer
}

type Option func(*options)

// WithOutput redirects log output. The default is stderr, since stdout
// carries command output.
func WithOutput(w zapcore.WriteSyncer) Option {
	return func(o *options) { o.out = w }
}

// New builds a logger named name for env:
//
//	production   JSON, info and above
//	debug        console, debug and above, caller and stack traces
//	development  console, debug and above
//	other        console, info and above
func New(name, env string, opts ...Option) (*Logger, error) {
	o := options{out: zapcore.Lock(os.Stderr)}
	for _, opt := range opts {
		opt(&o)
	}

	p := presetFor(env)
	core := zapcore.NewCore(p.encoder(), o.out, p.level)

	zopts := []zap.Option{zap.ErrorOutput(o.out)}
	if p.debug {
		zopts = append(zopts, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return wrap(zap.New(core, zopts...).Named(name)), nil
}

// Nop discards everything.
func Nop() *Logger { return wrap(zap.NewNop()) }

// FromZap wraps z; nil gives Nop.
func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		return Nop()
	}
	return wrap(z)
}

func wrap(z *zap.Logger) *Logger {
	return &Logger{
		SugaredLogger: z.Sugar(),
		skip:          z.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

type preset struct {
	level zapcore.Level
	json  bool
	debug bool
}

func presetFor(env string) preset {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production":
		return preset{level: zapcore.InfoLevel, json: true}
	case "debug":
		return preset{level: zapcore.DebugLevel, debug: true}
	case "development":
		return preset{level: zapcore.DebugLevel}
	default:
		return preset{level: zapcore.InfoLevel}
	}
}

func (p preset) encoder() zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if p.debug {
		ec.CallerKey = "caller"
	}
	if p.json {
		ec.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func (l *Logger) With(kv ...any) LoggerInterface {
	return &Logger{SugaredLogger: l.SugaredLogger.With(kv...), skip: l.skip.With(kv...)}
}

// SafeSync flushes buffered entries, ignoring the errors stderr returns
// when it is a terminal or a pipe.
func (l *Logger) SafeSync() {
	if l == nil {
		return
	}
	if err := l.Sync(); err != nil && !ignorableSyncError(err) {
		l.Errorw("log sync failed", "error", err)
	}
}

func ignorableSyncError(err error) bool {
	s := strings.ToLower(err.Error())
	for _, frag := range []string{"invalid argument", "inappropriate ioctl for device", "bad file descriptor"} {
		if strings.Contains(s, frag) {
			return true
		}
	}
	return false
}

func (l *Logger) DebugwCtx(ctx context.Context, msg string, kv ...any) {
	l.skip.Debugw(msg, withRequestID(ctx, kv)...)
}

func (l *Logger) InfowCtx(ctx context.Context, msg string, kv ...any) {
	l.skip.Infow(msg, withRequestID(ctx, kv)...)
}

func (l *Logger) WarnwCtx(ctx context.Context, msg string, kv ...any) {
	l.skip.Warnw(msg, withRequestID(ctx, kv)...)
}

func (l *Logger) ErrorwCtx(ctx context.Context, msg string, kv ...any) {
	l.skip.Errorw(msg, withRequestID(ctx, kv)...)
}

func withRequestID(ctx context.Context, kv []any) []any {
	if id := RequestIDFromContext(ctx); id != "" {
		return append(kv, "request_id", id)
	}
	return kv
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
