// Package errors provides the classified error primitives used across stdlinks.
//
// Every fatal condition of a run (rustdoc failure, resolver count mismatch,
// unrecognized documentation URL) is reported as a ClassifiedError so the CLI
// can pick an exit code and log structured context before terminating.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, resolve, internal, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Retry behavior. stdlinks never retries; it is kept for
//     classification so callers can tell user-fixable errors apart.
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and presentation
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryResolve, "failed to extract std links").
//		Fatal().
//		WithContext("chapter", doc.Name).
//		Build()
package errors
