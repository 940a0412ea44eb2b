package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger passed to the components that log
// (motionplan/search, motionplan/tour, server). It wraps a zap.SugaredLogger bound to
// one or more Appenders rather than exposing zap's config surface
// directly, so callers depend on this package's small interface instead of
// zap internals.
type Logger struct {
	*zap.SugaredLogger
}

var globalLogger = newConsoleLogger(zapcore.InfoLevel)

// NewLogger builds a Logger named name, writing to the given appenders at
// the given minimum level. With no appenders it writes to stdout.
func NewLogger(name string, level zapcore.Level, appenders ...Appender) Logger {
	if len(appenders) == 0 {
		appenders = []Appender{NewStdoutAppender()}
	}
	cores := make([]zapcore.Core, 0, len(appenders))
	for _, a := range appenders {
		cores = append(cores, &appenderCore{appender: a, level: level})
	}
	return Logger{zap.New(zapcore.NewTee(cores...)).Sugar().Named(name)}
}

func newConsoleLogger(level zapcore.Level) Logger {
	return NewLogger("photonav", level)
}

// NewTestLogger returns a Logger that writes to the test's own output via
// t.Log, matching the go.viam.com/test ecosystem idiom used throughout
// this repo's _test.go files.
func NewTestLogger(t *testing.T) Logger {
	t.Helper()
	return NewLogger("test", zapcore.DebugLevel, NewWriterAppender(testWriter{t}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Logf("%s", p)
	return len(p), nil
}

// CDebugf logs at debug level, including the request id pulled from ctx if
// one was attached by the server. Mirrors the teacher's context-aware log
// helpers (cBiRRT.go's mp.logger.CDebugf) used for per-request log
// correlation without threading a request id through every call site.
func (l Logger) CDebugf(ctx context.Context, template string, args ...interface{}) {
	if id, ok := RequestID(ctx); ok {
		l.Debugf("[%s] "+template, append([]interface{}{id}, args...)...)
		return
	}
	l.Debugf(template, args...)
}

// appenderCore adapts our small Appender interface to zapcore.Core so it
// can be composed with zapcore.NewTee.
type appenderCore struct {
	appender Appender
	level    zapcore.Level
}

func (c *appenderCore) Enabled(lvl zapcore.Level) bool { return lvl >= c.level }

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	return &appenderCoreWithFields{appenderCore: c, fields: fields}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.appender.Write(entry, fields)
}

func (c *appenderCore) Sync() error { return c.appender.Sync() }

type appenderCoreWithFields struct {
	*appenderCore
	fields []zapcore.Field
}

func (c *appenderCoreWithFields) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.appenderCore.Write(entry, append(append([]zapcore.Field{}, c.fields...), fields...))
}
