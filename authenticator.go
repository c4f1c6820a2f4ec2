package smsotp

import (
	"context"
	"time"

	"github.com/MrEthical07/smsotp/internal/limiters"
	"github.com/MrEthical07/smsotp/internal/stores"
)

// Audit event types emitted through the configured sink.
const (
	auditChallengeSent     = "smsotp_challenge_sent"
	auditChallengeResent   = "smsotp_challenge_resent"
	auditChallengeSkipped  = "smsotp_challenge_skipped"
	auditDeliveryFailed    = "smsotp_delivery_failed"
	auditCodeAccepted      = "smsotp_code_accepted"
	auditCodeMismatch      = "smsotp_code_mismatch"
	auditInvalidSubmission = "smsotp_invalid_submission"
	auditAttemptsExceeded  = "smsotp_attempts_exceeded"
	auditBackupCodeUsed    = "smsotp_backup_code_used"
	auditMobileUpdated     = "smsotp_mobile_number_updated"
	auditLogout            = "smsotp_logout"
)

// Authenticator is the SMS OTP second-factor step. It is safe for concurrent
// use; all per-flow state lives in the Redis-backed session store, keyed by
// the orchestrator's session data key.
//
// Build one with [New] and the fluent With* options.
type Authenticator struct {
	config    Config
	settings  SettingsProvider
	userStore UserStore
	smsSender SMSSender

	sessionStore *stores.SessionStore
	attempts     *limiters.OTPAttemptLimiter

	assertion *assertionSigner
	audit     *auditDispatcher
	metrics   *Metrics
}

// Process runs one round-trip of the factor. Logout requests complete
// immediately. A round-trip carrying a code parameter is a validation; a
// resend request or a bare visit (re)issues a challenge.
func (a *Authenticator) Process(ctx context.Context, req Request) (Result, error) {
	if a == nil {
		return Result{}, ErrAuthenticatorNotReady
	}

	if req.Logout {
		a.metricInc(MetricLogoutShortCircuit)
		a.emitAudit(ctx, auditLogout, nil, req.SessionDataKey, true, nil, nil)
		return Result{Status: StatusSuccessCompleted}, nil
	}

	if req.CodeSubmitted {
		return a.respond(ctx, req)
	}
	return a.initiate(ctx, req)
}

// CanHandle reports whether the round-trip carries any parameter this
// authenticator owns. The orchestrator uses it to route multi-factor
// submissions.
func (a *Authenticator) CanHandle(req Request) bool {
	return req.Code != "" || req.Resend || req.ResendSubmitted || req.MobileNumber != ""
}

// ContextIdentifier extracts the session correlation key from the round-trip.
func (a *Authenticator) ContextIdentifier(req Request) string {
	return req.SessionDataKey
}

// Name returns the redirect discriminator this instance was configured with.
func (a *Authenticator) Name() string {
	return a.config.AuthenticatorName
}

// MetricsSnapshot returns a point-in-time copy of all counters. All zeros
// when metrics are disabled.
func (a *Authenticator) MetricsSnapshot() MetricsSnapshot {
	return a.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded because the
// buffer was full.
func (a *Authenticator) AuditDropped() uint64 {
	return a.audit.Dropped()
}

// Close flushes and stops the audit dispatcher. The authenticator must not
// be used after Close.
func (a *Authenticator) Close() {
	if a == nil {
		return
	}
	a.audit.Close()
}

func (a *Authenticator) metricInc(id MetricID) {
	a.metrics.Inc(id)
}

func (a *Authenticator) emitAudit(ctx context.Context, eventType string, user *AuthenticatedUser, sessionID string, success bool, cause error, metadata map[string]string) {
	if a.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp:     time.Now(),
		EventType:     eventType,
		SessionID:     sessionID,
		CorrelationID: correlationIDFromContext(ctx),
		IP:            clientIPFromContext(ctx),
		Success:       success,
		Metadata:      metadata,
	}
	if user != nil {
		event.Username = user.Username
		event.TenantDomain = user.TenantDomain
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	a.audit.Emit(ctx, event)
}

// resolveSettings fetches the per-tenant view, falling back to the category
// sentinel so callers fail the attempt rather than guessing at policy. Page
// values the provider leaves empty fall back to the configured pages, so a
// sparse per-tenant override never produces an empty redirect base.
func (a *Authenticator) resolveSettings(ctx context.Context, tenantDomain string) (Settings, error) {
	if tenantDomain == "" {
		tenantDomain = tenantDomainFromContext(ctx)
	}
	settings, err := a.settings.Settings(ctx, tenantDomain, a.config.AuthenticatorName)
	if err != nil {
		return Settings{}, ErrSettingsUnavailable
	}
	if settings.LoginPage == "" {
		settings.LoginPage = a.config.Pages.Login
	}
	if settings.ErrorPage == "" {
		settings.ErrorPage = a.config.Pages.Error
	}
	if settings.MobileNumberRequestPage == "" {
		settings.MobileNumberRequestPage = a.config.Pages.MobileNumberRequest
	}
	return settings, nil
}
