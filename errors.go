package smsotp

import (
	"errors"
	"fmt"
)

// The two category sentinels mirror the split every caller cares about:
// ErrAuthenticationFailed errors end the current attempt (and sometimes the
// whole flow), ErrInvalidCredentials errors mean the submission itself was
// malformed and the user should simply be re-prompted. Specific causes wrap
// one of the two, so errors.Is works against both the cause and the category.
var (
	// ErrAuthenticationFailed is the category sentinel for unrecoverable or
	// attempt-fatal failures surfaced to the orchestrator.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrInvalidCredentials is the category sentinel for syntactically
	// invalid submissions that must never be compared against a code.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCodeMismatch is an exported constant or variable used by the SMS OTP authenticator.
	ErrCodeMismatch = fmt.Errorf("%w: code mismatch", ErrAuthenticationFailed)
	// ErrNoAuthenticatedUser is an exported constant or variable used by the SMS OTP authenticator.
	ErrNoAuthenticatedUser = fmt.Errorf("%w: cannot find the authenticated user", ErrAuthenticationFailed)
	// ErrUserStoreUnavailable is an exported constant or variable used by the SMS OTP authenticator.
	ErrUserStoreUnavailable = fmt.Errorf("%w: user store unavailable", ErrAuthenticationFailed)
	// ErrBackupCodesNotConfigured is an exported constant or variable used by the SMS OTP authenticator.
	ErrBackupCodesNotConfigured = fmt.Errorf("%w: backup codes not configured for user", ErrAuthenticationFailed)
	// ErrMobileUpdateDisabled is an exported constant or variable used by the SMS OTP authenticator.
	ErrMobileUpdateDisabled = fmt.Errorf("%w: mobile number not found and self-update disabled", ErrAuthenticationFailed)
	// ErrAttemptsExceeded is an exported constant or variable used by the SMS OTP authenticator.
	ErrAttemptsExceeded = fmt.Errorf("%w: otp attempts exceeded", ErrAuthenticationFailed)
	// ErrSessionUnavailable is an exported constant or variable used by the SMS OTP authenticator.
	ErrSessionUnavailable = fmt.Errorf("%w: session store unavailable", ErrAuthenticationFailed)
	// ErrSettingsUnavailable is an exported constant or variable used by the SMS OTP authenticator.
	ErrSettingsUnavailable = fmt.Errorf("%w: authenticator settings unavailable", ErrAuthenticationFailed)

	// ErrEmptyCode is an exported constant or variable used by the SMS OTP authenticator.
	ErrEmptyCode = fmt.Errorf("%w: code cannot be empty", ErrInvalidCredentials)
	// ErrResendWithCode is an exported constant or variable used by the SMS OTP authenticator.
	ErrResendWithCode = fmt.Errorf("%w: resend requested during code submission", ErrInvalidCredentials)

	// ErrMobileNumberNotFound is returned by the mobile number resolver when
	// no number exists for the principal. The flow controller converts it to
	// a mobile-capture redirect when self-update is enabled.
	ErrMobileNumberNotFound = errors.New("mobile number not found")
	// ErrSMSDeliveryFailed is an exported constant or variable used by the SMS OTP authenticator.
	ErrSMSDeliveryFailed = errors.New("sms delivery failed")

	// ErrAuthenticatorNotReady is an exported constant or variable used by the SMS OTP authenticator.
	ErrAuthenticatorNotReady = errors.New("authenticator not initialized")
	// ErrAssertionDisabled is an exported constant or variable used by the SMS OTP authenticator.
	ErrAssertionDisabled = errors.New("completion assertions disabled")
	// ErrAssertionInvalid is an exported constant or variable used by the SMS OTP authenticator.
	ErrAssertionInvalid = errors.New("invalid completion assertion")
)
