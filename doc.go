// Package smsotp implements an SMS one-time-password second factor for
// multi-step login flows: challenge issue, code validation, single-use backup
// codes, retry/mismatch policy, and the redirect decisions that drive the
// hosted OTP pages.
//
// The package is designed as an embeddable authenticator: an orchestrating
// framework identifies the principal in an earlier step, then calls
// [Authenticator.Process] once per HTTP round-trip until the factor reports
// [StatusSuccessCompleted]. Authenticator methods are safe to call from
// multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// smsotp is the public surface. It exposes [Authenticator], [Builder],
// [Config], and value types (Request, Session, Result, MetricsSnapshot).
// Session encoding, attempt limiting, and OTP generation live under
// internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Talk to an SMS gateway itself; delivery goes through the injected
//     [SMSSender].
//   - Own the user database; claim reads and write-backs go through the
//     injected [UserStore].
//   - Sequence authentication steps; it reports a flow status and exactly
//     one redirect per invocation, nothing more.
package smsotp
