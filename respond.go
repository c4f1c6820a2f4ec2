package smsotp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/smsotp/internal/limiters"
)

const statusCodeMismatch = "code-mismatch"

// respond validates a submitted code against the stored OTP, falling back to
// the user's backup code list when policy allows. A correct stored OTP always
// wins, regardless of retry or mismatch flags carried from earlier attempts.
func (a *Authenticator) respond(ctx context.Context, req Request) (Result, error) {
	if req.Code == "" {
		a.metricInc(MetricInvalidSubmission)
		a.emitAudit(ctx, auditInvalidSubmission, nil, req.SessionDataKey, false, ErrEmptyCode, nil)
		return Result{}, ErrEmptyCode
	}
	if req.Resend {
		a.metricInc(MetricInvalidSubmission)
		a.emitAudit(ctx, auditInvalidSubmission, nil, req.SessionDataKey, false, ErrResendWithCode, nil)
		return Result{}, ErrResendWithCode
	}

	sess, err := a.LookupSession(ctx, req.SessionDataKey)
	if err != nil {
		return Result{}, err
	}

	user := sess.User
	if user == nil {
		return Result{}, ErrNoAuthenticatedUser
	}

	if err := a.attempts.Check(ctx, sess.Identifier); err != nil {
		if errors.Is(err, limiters.ErrOTPAttemptsExceeded) {
			a.metricInc(MetricAttemptsExceeded)
			a.emitAudit(ctx, auditAttemptsExceeded, user, sess.Identifier, false, err, nil)
			return Result{}, ErrAttemptsExceeded
		}
		return Result{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	if sess.OTPToken != "" && !a.otpExpired(sess) && subtle.ConstantTimeCompare([]byte(req.Code), []byte(sess.OTPToken)) == 1 {
		return a.accept(ctx, sess, MetricCodeAccepted, auditCodeAccepted)
	}

	settings, err := a.resolveSettings(ctx, sess.TenantDomain)
	if err != nil {
		return Result{}, err
	}

	if settings.BackupCodesEnabled {
		switch err := a.consumeBackupCode(ctx, user, req.Code); {
		case err == nil:
			return a.accept(ctx, sess, MetricBackupCodeUsed, auditBackupCodeUsed)
		case errors.Is(err, ErrCodeMismatch):
			a.metricInc(MetricBackupCodeFailed)
		default:
			return Result{}, err
		}
	}

	return Result{}, a.recordMismatch(ctx, sess)
}

// accept finalizes a successful validation: flags are cleared so a later
// round-trip cannot replay stale banner state, the failed-attempt counter is
// reset, and a completion assertion is issued when configured.
func (a *Authenticator) accept(ctx context.Context, sess *Session, metric MetricID, event string) (Result, error) {
	sess.OTPToken = ""
	sess.StatusCode = ""
	sess.CodeMismatch = false
	sess.IsRetrying = false
	if err := a.SaveSession(ctx, sess); err != nil {
		return Result{}, err
	}
	if err := a.attempts.Reset(ctx, sess.Identifier); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	result := Result{Status: StatusSuccessCompleted}
	if a.assertion != nil {
		assertion, err := a.assertion.issue(sess.User)
		if err != nil {
			return Result{}, err
		}
		result.Assertion = assertion
		a.metricInc(MetricAssertionIssued)
	}

	a.metricInc(metric)
	a.emitAudit(ctx, event, sess.User, sess.Identifier, true, nil, nil)

	return result, nil
}

// otpExpired reports whether the stored code has outlived OTP.TokenTTL. An
// expired code never compares equal; the user must request a resend. Records
// written before issue timestamps were tracked carry no bound.
func (a *Authenticator) otpExpired(sess *Session) bool {
	if sess.OTPIssuedAt.IsZero() {
		return false
	}
	return time.Since(sess.OTPIssuedAt) > a.config.OTP.TokenTTL
}

// recordMismatch persists the failure so the next initiate cycle renders the
// mismatch banner, then fails the attempt.
func (a *Authenticator) recordMismatch(ctx context.Context, sess *Session) error {
	sess.CodeMismatch = true
	sess.StatusCode = statusCodeMismatch
	sess.IsRetrying = true
	if err := a.SaveSession(ctx, sess); err != nil {
		return err
	}

	// The cap takes effect on the next Check; the attempt that crossed it is
	// still reported as a mismatch.
	if err := a.attempts.RecordFailure(ctx, sess.Identifier); err != nil && !errors.Is(err, limiters.ErrOTPAttemptsExceeded) {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	a.metricInc(MetricCodeMismatch)
	a.emitAudit(ctx, auditCodeMismatch, sess.User, sess.Identifier, false, ErrCodeMismatch, nil)
	return ErrCodeMismatch
}
