// Package logging provides structured logging for ledctl.
//
// This package wraps a zap logger with convenience functions used by the
// device client, discovery and the CLI. Logging is silent unless a level is
// requested, so one-shot commands and the terminal panel never interleave
// log lines with their own output.
//
// # Log Levels
//
//   - Debug: request bodies, mDNS entries
//   - Info: request lifecycle (sent, succeeded)
//   - Warn: non-success responses, timeouts
//   - Error: transport failures
//
// # Configuration
//
//	if err := logging.Initialize("debug", ""); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When level is empty the LEDCTL_LOG_LEVEL environment variable is used.
// The terminal panel passes a file path so logs never reach the screen it
// draws on.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
