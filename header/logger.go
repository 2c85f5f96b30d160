package header

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger    atomic.Pointer[zap.Logger]
	nopLogger = zap.NewNop()
)

// Logger returns the logger used by the header package. It is a no-op logger
// unless SetLogger has been called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nopLogger
}

// SetLogger replaces the logger used by the header package. A nil logger
// restores the no-op logger. It is safe to call while decoding or encoding
// is in progress.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
