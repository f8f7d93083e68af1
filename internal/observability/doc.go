// Package observability builds the service logger and the OpenTelemetry
// trace pipeline.
//
// Logging is zap-based: JSON in production, console output for local work.
// Tracing exports spans over OTLP/gRPC when enabled and is a no-op otherwise.
package observability
