// Package stores provides the Redis-backed authentication session store.
//
// # Design
//
// The store persists a versioned, binary-encoded record in Redis with a TTL.
// One record spans every HTTP round-trip of a single OTP flow, keyed by the
// session identifier the orchestrator hands the authenticator. Redis gives
// the read-after-write consistency per key the flow depends on: a freshly
// issued OTP or cleared mismatch flag must be observable by the next request
// in the same session.
//
// # What this package must NOT do
//
//   - Import smsotp or any sibling internal package.
//   - Log or expose plaintext one-time codes.
//   - Make flow decisions — it stores and returns state, nothing more.
package stores
