// Package logger provides a zap-based application logger that stamps every
// entry with the trace id carried by the context.
package logger

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents a logging level.
type Level = zapcore.Level

// Supported levels.
const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// TraceIDFn extracts a trace id from a context.
type TraceIDFn func(ctx context.Context) string

// Logger wraps a sugared zap logger.
type Logger struct {
	sl        *zap.SugaredLogger
	traceIDFn TraceIDFn
}

// New constructs a JSON logger writing to w at the given minimum level.
func New(w io.Writer, minLevel Level, service string, traceIDFn TraceIDFn) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(w), minLevel)
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(zap.String("service", service))

	return &Logger{sl: z.Sugar(), traceIDFn: traceIDFn}
}

// ParseLevel converts a textual level, defaulting to info.
func ParseLevel(s string) Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return LevelInfo
	}
	return lvl
}

func (l *Logger) with(ctx context.Context) *zap.SugaredLogger {
	if l.traceIDFn == nil || ctx == nil {
		return l.sl
	}
	return l.sl.With("trace_id", l.traceIDFn(ctx))
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.with(ctx).Debugw(msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.with(ctx).Infow(msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.with(ctx).Warnw(msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.with(ctx).Errorw(msg, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sl.Sync()
}

// AccessLog logs one line per request with its status and duration. Requests
// without an X-Request-ID header get a generated one, echoed in the response.
func (l *Logger) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		args := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if rw.status >= http.StatusInternalServerError {
			l.Error(r.Context(), "request", args...)
			return
		}
		l.Info(r.Context(), "request", args...)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
