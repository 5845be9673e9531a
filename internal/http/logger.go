package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"
)

type logformatter struct {
	logger zerolog.Logger
}

func (l *logformatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	logger := l.logger.With().
		Str("remote-addr", r.RemoteAddr).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Logger()

	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		logger = logger.With().Str("req-id", reqID).Logger()
	}

	return &logentry{logger: logger}
}

type logentry struct {
	logger zerolog.Logger
	panic  struct {
		message interface{}
		stack   string
	}
}

func (e *logentry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	logger := e.logger.With().
		Int("status", status).
		Int("bytes", bytes).
		Dur("elapsed", elapsed).
		Logger()

	if e.panic.message != nil {
		logger.Error().
			Interface("panic", e.panic.message).
			Str("stack", e.panic.stack).
			Msg("request failed")
		return
	}

	logger.Debug().Msg("request complete")
}

func (e *logentry) Panic(message interface{}, stack []byte) {
	e.panic.message = message
	e.panic.stack = string(stack)
}
