package logger

import "context"

// LoggerInterface is the structured logging surface components depend on.
// *Logger implements it.
type LoggerInterface interface {
	Debugw(msg string, kv ...any)
	Infow(msg string, kv ...any)
	Warnw(msg string, kv ...any)
	Errorw(msg string, kv ...any)

	DebugwCtx(ctx context.Context, msg string, kv ...any)
	InfowCtx(ctx context.Context, msg string, kv ...any)
	WarnwCtx(ctx context.Context, msg string, kv ...any)
	ErrorwCtx(ctx context.Context, msg string, kv ...any)

	With(kv ...any) LoggerInterface
	SafeSync()
}

var _ LoggerInterface = (*Logger)(nil)
