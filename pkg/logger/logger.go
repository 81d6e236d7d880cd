package logger

import (
	"github.com/sirupsen/logrus"
)

// ComponentKey is the log field under which a component records its name.
const ComponentKey = "component"

// ComponentLogger is the logging interface handed to individual components.
// It is satisfied by *logrus.Entry and *logrus.Logger, so tests can inject
// either directly.
type ComponentLogger interface {
	WithField(key string, value any) *logrus.Entry
	WithFields(fields logrus.Fields) *logrus.Entry
	WithError(err error) *logrus.Entry
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// Default is the process-wide default logger.
var Default = logrus.New()

// New returns a logger for the named component, tagging every entry with the
// component field.
func New(component string) ComponentLogger {
	return Default.WithField(ComponentKey, component)
}
