package shim

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger shared by the shim backends. It is a
// nop unless CRENGINE_DEBUG is set in the environment, which switches to a
// zap development logger so symbol binding, call traces, and guest traps
// become visible on stderr.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if os.Getenv("CRENGINE_DEBUG") == "" {
			logger = zap.NewNop()
			return
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// debugf traces individual shim calls. With the nop logger the call is
// filtered before any formatting happens.
func debugf(format string, args ...any) {
	Logger().Sugar().Debugf(format, args...)
}
