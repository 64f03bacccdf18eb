// Package logger builds the application's zerolog loggers and owns the
// optional New Relic agent.
//
// The main logger is configured from ObservabilityConfig (level, json
// or console format). LoggerService wraps the New Relic application;
// when no license key is configured the wrapper exists but carries a
// nil agent, and every caller degrades to plain logging.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/config"
)

// LoggerService wraps the New Relic application instance. A nil nrApp
// means APM is disabled.
type LoggerService struct {
	nrApp *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when APM is
// not configured.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.nrApp
}

// Shutdown flushes buffered telemetry. Safe to call when APM is
// disabled.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s == nil || s.nrApp == nil {
		return
	}
	s.nrApp.Shutdown(timeout)
}

// Bootstrap returns a minimal console logger for use before config is
// loaded.
func Bootstrap() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// New builds the main application logger and the LoggerService from
// config.
//
// Level and format come from the observability section. The New Relic
// agent is only started when a license key is present; a missing key is
// not an error.
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	level, err := zerolog.ParseLevel(cfg.Observability.GetLogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	var log zerolog.Logger
	if cfg.Observability.Logging.Format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stderr)
	}
	log = log.Level(level).With().
		Timestamp().
		Str("service", cfg.Observability.ServiceName).
		Str("env", cfg.Observability.Environment).
		Logger()

	service := &LoggerService{}
	if cfg.Observability.NewRelic.LicenseKey != "" {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(cfg.Observability.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(cfg.Observability.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogForwardingEnabled),
		}
		if cfg.Observability.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
		}

		app, err := newrelic.NewApplication(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing new relic agent: %w", err)
		}
		service.nrApp = app
		log.Info().Msg("new relic agent initialized")
	}

	return &log, service, nil
}

// NewPgxLogger returns a console logger dedicated to SQL statement
// logging. Kept separate from the main logger so query output can be
// pretty-printed without affecting application log format.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel converts a zerolog level into the pgx tracelog
// level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}

// WithTraceContext attaches New Relic trace correlation fields
// (trace.id, span.id) to a logger so log lines can be joined with
// distributed traces.
func WithTraceContext(log zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return log
	}
	md := txn.GetLinkingMetadata()
	if md.TraceID == "" {
		return log
	}
	return log.With().
		Str("trace.id", md.TraceID).
		Str("span.id", md.SpanID).
		Logger()
}
