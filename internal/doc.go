// Package internal contains helper utilities that are intentionally private
// to smsotp, currently secure OTP generation.
//
// # Sub-packages
//
//   - limiters — Redis-backed failed-attempt throttle for OTP submissions
//   - stores — Redis-backed authentication session store
//
// # What this package must NOT do
//
//   - Export types that appear in the public smsotp API.
//   - Be imported by any package outside the smsotp module.
package internal
