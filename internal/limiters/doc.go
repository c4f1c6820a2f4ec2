// Package limiters provides the failed-attempt throttle for OTP submissions.
//
// [OTPAttemptLimiter] counts failures per authentication session in Redis
// (INCR + EXPIRE). It is nil-safe: calling any method on a nil receiver
// returns nil, which disables the cap.
//
// # Architecture boundaries
//
// The limiter owns its Redis key namespace and error types. Policy
// thresholds come from the Config struct supplied at construction time.
//
// # What this package must NOT do
//
//   - Import smsotp or any sibling internal package.
//   - Make policy decisions beyond counting — the flow controller decides
//     consequences.
package limiters
