package server

import (
	"log"
	"strings"

	"github.com/rs/zerolog"
)

// newErrorLog routes net/http's internal error log through zerolog.
func newErrorLog(logger zerolog.Logger) *log.Logger {
	return log.New(errorWriter{logger: logger.With().Str("component", "http").Logger()}, "", 0)
}

type errorWriter struct {
	logger zerolog.Logger
}

func (w errorWriter) Write(p []byte) (int, error) {
	w.logger.Warn().Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}
