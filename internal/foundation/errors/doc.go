// Package errors provides the classified error primitives used across journalsite.
//
// A ClassifiedError carries a category (config, not_found, parse, build, ...),
// a severity and structured context. Categories drive the CLI exit code; the
// severity decides whether the run stops or continues with degraded output.
//
// Example usage:
//
//	err := errors.NotFoundError("README not found").
//		WithContext("path", readmePath).
//		WithCause(statErr).
//		Build()
package errors
