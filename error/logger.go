package error

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the package logger. It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}

	logger.CompareAndSwap(nil, zap.NewNop())

	return logger.Load()
}

// SetLogger replaces the package logger. It is consulted only by drops that
// run from a runtime cleanup (see WithAutoDrop), where no caller exists to
// receive a panic. A nil logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	logger.Store(l)
}

// dropInBackground is the runtime cleanup registered by WithAutoDrop. It
// leaves the storage intact: pointers from DowncastRef may still be live.
func dropInBackground(st *storage) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("drop hook panicked during cleanup",
				zap.String("type", st.vt.typ.String()),
				zap.Any("panic", r))
		}
	}()

	if st.release(false) {
		Logger().Debug("erased value dropped by cleanup",
			zap.String("type", st.vt.typ.String()))
	}
}
