// Package log provides the structured, leveled logger used across this
// module. It wraps zerolog behind a small package-level API (printf and
// structured key-value variants) so that call sites never import
// zerolog directly, mirroring the source repository's own internal log
// package.
package log

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// LogLevel identifies one of the supported logging levels.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// logTestWriterName is the sentinel output name tests use to redirect
// log output to logTestWriter instead of a real file or stream.
const logTestWriterName = "test"

// logTestWriter is only consulted when Init is called with output ==
// logTestWriterName; production callers never see it.
var logTestWriter io.Writer = os.Stderr

// panicOnInvalidChars guards against log messages containing bytes that
// are not valid UTF-8, which would otherwise corrupt structured log
// output silently. It defaults to false and is only flipped on by
// tests.
var panicOnInvalidChars = false

var (
	logger   zerolog.Logger
	curLevel LogLevel
)

func init() {
	Init("info", "stderr", nil)
}

// Init configures the package-level logger. level is one of
// debug/info/warn/error. output is "stdout", "stderr", a file path, or
// the test sentinel. If errorWriter is non-nil, Warn level and above are
// additionally duplicated to it (used by hosts that want errors mirrored
// to a separate stream, e.g. a CLI's stderr while info logs go to a
// logfile).
func Init(level, output string, errorWriter io.Writer) {
	var w io.Writer
	switch output {
	case "stdout":
		w = os.Stdout
	case "stderr", "":
		w = os.Stderr
	case logTestWriterName:
		w = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			w = os.Stderr
		} else {
			w = f
		}
	}

	if errorWriter != nil {
		w = zerolog.MultiLevelWriter(w, levelFilteredWriter{w: errorWriter, min: zerolog.WarnLevel})
	}

	zlevel, lvl := parseLevel(level)
	curLevel = lvl
	logger = zerolog.New(w).Level(zlevel).With().Timestamp().Logger()
}

// Level returns the currently configured minimum logging level.
func Level() LogLevel {
	return curLevel
}

func parseLevel(level string) (zerolog.Level, LogLevel) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, LogLevelDebug
	case "warn":
		return zerolog.WarnLevel, LogLevelWarn
	case "error":
		return zerolog.ErrorLevel, LogLevelError
	case "fatal":
		return zerolog.FatalLevel, LogLevelFatal
	default:
		return zerolog.InfoLevel, LogLevelInfo
	}
}

func checkInvalidChars(msg string) {
	if panicOnInvalidChars && !utf8.ValidString(msg) {
		panic(fmt.Sprintf("log message contains invalid UTF-8: %q", msg))
	}
}

// Debugf logs a printf-style message at debug level.
func Debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkInvalidChars(msg)
	logger.Debug().Msg(msg)
}

// Infof logs a printf-style message at info level.
func Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkInvalidChars(msg)
	logger.Info().Msg(msg)
}

// Warnf logs a printf-style message at warn level.
func Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkInvalidChars(msg)
	logger.Warn().Msg(msg)
}

// Errorf logs a printf-style message at error level.
func Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkInvalidChars(msg)
	logger.Error().Msg(msg)
}

// Error logs err's message at error level.
func Error(err error) {
	if err == nil {
		return
	}
	logger.Error().Msg(err.Error())
}

// Fatal logs args at fatal level and terminates the process.
func Fatal(args ...any) {
	logger.Fatal().Msg(fmt.Sprint(args...))
}

// Debugw logs msg at debug level with the given alternating key-value
// pairs attached as structured fields.
func Debugw(msg string, keyvals ...any) {
	logWith(logger.Debug(), msg, keyvals...)
}

// Infow logs msg at info level with structured key-value fields.
func Infow(msg string, keyvals ...any) {
	logWith(logger.Info(), msg, keyvals...)
}

// Warnw logs msg at warn level with structured key-value fields.
func Warnw(msg string, keyvals ...any) {
	logWith(logger.Warn(), msg, keyvals...)
}

// Errorw logs msg at error level with structured key-value fields.
func Errorw(msg string, keyvals ...any) {
	logWith(logger.Error(), msg, keyvals...)
}

func logWith(event *zerolog.Event, msg string, keyvals ...any) {
	checkInvalidChars(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keyvals[i])
		}
		event = event.Interface(key, keyvals[i+1])
	}
	event.Msg(msg)
}

// levelFilteredWriter forwards only records at or above min to w.
type levelFilteredWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (l levelFilteredWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < l.min {
		return len(p), nil
	}
	return l.w.Write(p)
}

func (l levelFilteredWriter) Write(p []byte) (int, error) {
	return l.w.Write(p)
}
