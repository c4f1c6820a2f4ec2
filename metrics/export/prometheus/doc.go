// Package prometheus provides Prometheus collectors for smsotp metrics.
//
// [NewPrometheusExporter] accepts an [smsotp.Authenticator] and exposes an
// [http.Handler] that renders all smsotp counters in Prometheus text exposition
// format. Counter names are prefixed smsotp_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate authenticator state.
package prometheus
