// Package audit contains durable in-product audit writes for table engine
// operations.
//
// This package owns persisted operational audit events that are used for
// incident analysis: timeouts, rejections, generator failures, halts.
//
// For distributed tracing, the service still uses package
// `internal/platform/otel`; audit rows carry the active trace and span IDs
// so both trails can be joined.
package audit
