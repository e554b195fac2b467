// Package logger is the logging seam shared by the codec packages and the
// command line tools.
package logger

import (
	"bytes"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the interface we want for our logger, so we can plug different ones easily
type Logger interface {
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})
	SetLevel(level logrus.Level)
	GetLevel() logrus.Level
	SetOutput(writer io.Writer)
}

var (
	mu  sync.RWMutex
	std Logger = logrus.StandardLogger()
)

// New returns a logrus logger writing to stderr at info level.
func New() Logger {
	return logrus.New()
}

// NewNullLogger returns a logger that discards all logs, used mainly for testing
func NewNullLogger() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewBufferLogger returns a logger that stores all logs in a buffer, used mainly for testing
func NewBufferLogger(b *bytes.Buffer) Logger {
	l := logrus.New()
	l.SetOutput(b)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	return l
}

// SetDefault replaces the logger used by the package level helpers and
// returns the previous one.
func SetDefault(l Logger) Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := std
	std = l
	return prev
}

// Default returns the logger used by the package level helpers.
func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

func IsDebug(l Logger) bool {
	return l.GetLevel() >= logrus.DebugLevel
}

func Debugf(format string, args ...interface{}) {
	Default().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	Default().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}
