package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once  sync.Once
	sugar *zap.SugaredLogger
)

func get() *zap.SugaredLogger {
	once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		sugar = l.Sugar()
	})
	return sugar
}

// normalize accepts both call shapes used across the codebase:
// logger.Error("Repo:Method", err) and logger.Error("msg", "key", value).
// An odd trailing argument is keyed as "error".
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	out = append(out, "error", args[len(args)-1])
	return out
}

func Info(msg string, args ...any) {
	get().Infow(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warnw(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Errorw(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	get().Fatalw(msg, normalize(args)...)
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	_ = get().Sync()
}
