package logging

import (
	"bytes"
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestConsoleAppenderWrite(t *testing.T) {
	var buf bytes.Buffer
	appender := NewWriterAppender(&buf)
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Message: "hello"}
	test.That(t, appender.Write(entry, nil), test.ShouldBeNil)
	test.That(t, buf.Len(), test.ShouldBeGreaterThan, 0)
}

func TestLoggerWritesToAppender(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("test", zapcore.DebugLevel, NewWriterAppender(&buf))
	logger.Infow("planning started", "obstacles", 3)
	test.That(t, buf.String(), test.ShouldContainSubstring, "planning started")
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := RequestID(ctx)
	test.That(t, ok, test.ShouldBeFalse)

	ctx = WithRequestID(ctx, "job-1")
	id, ok := RequestID(ctx)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, id, test.ShouldEqual, "job-1")
}
