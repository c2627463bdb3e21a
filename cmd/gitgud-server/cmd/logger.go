package cmd

import (
	"log/slog"
	"os"

	"github.com/anndream/gitgud/log"
)

// slogLogger adapts the standard library's structured logger to log.Logger,
// the contract every package in this module pulls from context rather than
// a global.
type slogLogger struct {
	logger *slog.Logger
}

func newStartupLogger() *slogLogger {
	return &slogLogger{logger: slog.New(slog.NewTextHandler(os.Stderr, nil))}
}

func (l *slogLogger) Debug(msg string, keysAndValues ...any) { l.logger.Debug(msg, keysAndValues...) }
func (l *slogLogger) Info(msg string, keysAndValues ...any)  { l.logger.Info(msg, keysAndValues...) }
func (l *slogLogger) Warn(msg string, keysAndValues ...any)  { l.logger.Warn(msg, keysAndValues...) }
func (l *slogLogger) Error(msg string, keysAndValues ...any) { l.logger.Error(msg, keysAndValues...) }

var _ log.Logger = (*slogLogger)(nil)
