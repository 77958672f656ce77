// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the HTTP surface.
//
// # Correlation
//
// Two helpers attach correlation fields to a logger:
//   - WithRayID extracts the RayID (request ID) from a Fiber context.
//   - WithRunID tags every entry of a reconciliation run with its run ID, so the
//     per-line parse diagnostics of one pass can be told apart from another.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync started")
//
//	l := logger.WithRunID(log, runID)
//	l.Warn("skipping incorrectly formatted line", zap.Int("line", 4))
package logger
