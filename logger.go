package limbs

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/zostay/go-limbs/header"
)

var (
	logger    atomic.Pointer[zap.Logger]
	nopLogger = zap.NewNop()
)

// Logger returns the logger used while loading and dumping records. It uses a
// no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nopLogger
}

// SetLogger configures the logger for this package and for package header.
// Everything logged is at debug level. A nil logger restores the no-op
// logger.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
	header.SetLogger(l)
}
