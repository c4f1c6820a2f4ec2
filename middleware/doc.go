// Package middleware exposes an HTTP middleware adapter that gates downstream
// handlers on a signed second-factor completion assertion.
//
// # Guards
//
//   - [RequireAssertion] — verifies the completion assertion and injects the
//     asserted subject into the request context.
//
// The guard reads the X-Completion-Assertion header (falling back to a Bearer
// Authorization header), calls Authenticator.VerifyAssertion, and makes the
// subject available via [SubjectFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Authenticator calls. It does NOT
// implement verification logic itself — all decisions are delegated to
// Authenticator.VerifyAssertion.
//
// # What this package must NOT do
//
//   - Parse or create assertions directly (delegates to the Authenticator).
//   - Access Redis (the Authenticator handles I/O).
//   - Make authorization decisions beyond pass/reject from VerifyAssertion.
package middleware
