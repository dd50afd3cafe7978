package atlas

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[logrus.FieldLogger]

// SetLogger sets the logger used by the package. Nil restores the logrus
// standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	loggerPtr.Store(&l)
}

// Logger returns the logger set by SetLogger.
func Logger() logrus.FieldLogger {
	if l := loggerPtr.Load(); l != nil {
		return *l
	}
	return logrus.StandardLogger()
}
