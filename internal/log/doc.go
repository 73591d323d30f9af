// Package log builds the slog loggers used by namemigrate.
//
// Name lists are personal data. The RedactingHandler masks attributes that
// carry names (keys such as "name", "names", "sample" or "value") before they
// reach the output, unless name display was explicitly enabled. Credentials
// (passwords, tokens) are always masked.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: true})
//	logger.Debug("normalized", "table", "FirstNames", "sample", names[:3])
//	// table=FirstNames sample=***REDACTED***
package log
