// Package logging implements common.LoggerInterface on top of logrus, the
// structured logger the rest of the dependency stack already standardizes
// on.
package logging

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// Logger implements common.LoggerInterface and common.LoggerInterfaceHexdump
// by wrapping a *logrus.Entry.
type Logger struct {
	entry *logrus.Entry
}

// Option configures a Logger at construction time.
type Option func(*logrus.Logger, map[string]interface{})

// WithLevel sets the log level.
func WithLevel(level common.LogLevel) Option {
	return func(l *logrus.Logger, _ map[string]interface{}) {
		l.SetLevel(toLogrusLevel(level))
	}
}

// WithWriter sets the output writer.
func WithWriter(w io.Writer) Option {
	return func(l *logrus.Logger, _ map[string]interface{}) {
		l.SetOutput(w)
	}
}

// WithFields seeds the logger with a base set of structured fields, merged
// with any fields attached later via the Logger's own WithFields.
func WithFields(fields map[string]interface{}) Option {
	return func(_ *logrus.Logger, base map[string]interface{}) {
		for k, v := range fields {
			base[k] = v
		}
	}
}

// NewLogger returns a Logger writing text-formatted entries to stdout at
// info level by default, as overridden by opts.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	fields := make(map[string]interface{})
	for _, o := range opts {
		o(base, fields)
	}

	return &Logger{entry: base.WithFields(fields)}
}

func (l *Logger) Trace(_ context.Context, format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}

func (l *Logger) Debug(_ context.Context, format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Info(_ context.Context, format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warn(_ context.Context, format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(_ context.Context, format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// WithFields returns a new Logger sharing the underlying logrus.Logger but
// with fields merged on top of the existing set.
func (l *Logger) WithFields(fields map[string]interface{}) common.LoggerInterface {
	return &Logger{entry: l.entry.WithFields(fields)}
}

func (l *Logger) GetLevel() common.LogLevel {
	return fromLogrusLevel(l.entry.Logger.GetLevel())
}

func (l *Logger) SetLevel(level common.LogLevel) {
	l.entry.Logger.SetLevel(toLogrusLevel(level))
}

// Hexdump emits a trace-level dump of raw wire bytes, one 16-byte row per
// line, gated on the logger actually being at trace level since a live
// adapter connection can push a lot of traffic.
func (l *Logger) Hexdump(ctx context.Context, data []byte) {
	if l.entry.Logger.GetLevel() < logrus.TraceLevel {
		return
	}
	var b strings.Builder
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		b.WriteString(hex.EncodeToString(data[i:end]))
		b.WriteByte('\n')
	}
	l.Trace(ctx, "hexdump (%d bytes)\n%s", len(data), b.String())
}

func toLogrusLevel(level common.LogLevel) logrus.Level {
	switch level {
	case common.LevelTrace:
		return logrus.TraceLevel
	case common.LevelDebug:
		return logrus.DebugLevel
	case common.LevelInfo:
		return logrus.InfoLevel
	case common.LevelWarn:
		return logrus.WarnLevel
	case common.LevelError:
		return logrus.ErrorLevel
	default:
		// LevelNone: logrus has no true "off" level, but nothing in this
		// package ever logs at PanicLevel, so pinning to it silences every
		// call this Logger actually makes.
		return logrus.PanicLevel
	}
}

func fromLogrusLevel(level logrus.Level) common.LogLevel {
	switch level {
	case logrus.TraceLevel:
		return common.LevelTrace
	case logrus.DebugLevel:
		return common.LevelDebug
	case logrus.InfoLevel:
		return common.LevelInfo
	case logrus.WarnLevel:
		return common.LevelWarn
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return common.LevelError
	default:
		return common.LevelNone
	}
}
