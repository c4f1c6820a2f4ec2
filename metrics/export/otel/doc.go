// Package otel provides OpenTelemetry metric exporter bindings for smsotp counters.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each smsotp
// metric. A single callback reads [smsotp.Authenticator.MetricsSnapshot] on each
// collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate authenticator state.
package otel
