// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a console encoding suited to CLI use.
//
// # Run Correlation
//
// WithRunID attaches a generated run identifier to the logger, ensuring that
// all log lines belonging to one migration run can be correlated after the
// fact, including across re-runs of an interrupted migration.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log)
//	log.Info("migration started")
package logger
