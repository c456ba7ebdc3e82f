// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the CLI (console encoding by
// default) and for serve mode, where it integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so all logs of one request can be correlated. Sync runs
// attach a run_id field the same way.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (development) or json (production)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync started")
package logger
