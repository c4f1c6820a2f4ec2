package smsotp

import (
	"context"
	"time"
)

// FlowStatus is reported back to the orchestrating framework after every
// invocation of [Authenticator.Process].
type FlowStatus uint8

const (
	// StatusIncomplete means more interaction is needed; the Result carries
	// the redirect that drives the next round-trip.
	StatusIncomplete FlowStatus = iota
	// StatusSuccessCompleted means the factor is satisfied or was bypassed
	// (logout, optional factor disabled for the user).
	StatusSuccessCompleted
)

// String describes the status for logs and audit metadata.
func (s FlowStatus) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusSuccessCompleted:
		return "success_completed"
	default:
		return "unknown"
	}
}

// AuthenticatedUser is the principal identity resolved by an earlier
// authentication step. It must be present on the session before a challenge
// can be issued.
type AuthenticatedUser struct {
	Username     string
	TenantDomain string
}

// FullyQualified returns username@tenant, the form used in audit events and
// SMS dispatch correlation.
func (u AuthenticatedUser) FullyQualified() string {
	if u.TenantDomain == "" {
		return u.Username
	}
	return u.Username + "@" + u.TenantDomain
}

// Request is the typed view of one inbound HTTP round-trip. Fields map to
// the query/form parameters the hosted OTP pages submit; absent parameters
// are zero values.
type Request struct {
	// Code is the submitted one-time code.
	Code string
	// CodeSubmitted is set when the code parameter was present on the
	// round-trip, even with an empty value. Presence routes to validation;
	// absence routes to challenge issue.
	CodeSubmitted bool
	// Resend is set when the user asked for a fresh code.
	Resend bool
	// ResendSubmitted is set when the resend parameter was present on the
	// round-trip regardless of its value. Presence makes the round-trip
	// handleable even when the value does not parse as a resend request.
	ResendSubmitted bool
	// MobileNumber is the self-service mobile number override from the
	// mobile-capture page.
	MobileNumber string
	// SessionDataKey correlates the round-trip with the authentication
	// session owned by the orchestrator.
	SessionDataKey string
	// Logout marks the round-trip as part of a logout flow; no OTP logic
	// runs for it.
	Logout bool
}

// Result is returned by [Authenticator.Process].
type Result struct {
	Status FlowStatus
	// RedirectURL is the single redirect for this invocation. Empty when
	// Status is StatusSuccessCompleted.
	RedirectURL string
	// Assertion is a signed completion assertion issued on success when
	// assertions are enabled in [Config].
	Assertion string
	// Skipped is set when an optional factor was bypassed for this user.
	Skipped bool
}

// Session is the authenticator-visible slice of the request-spanning
// authentication session. The orchestrator owns creation and destruction;
// the authenticator reads and writes named fields and persists them through
// the Redis-backed session store so the next round-trip observes them.
type Session struct {
	// Identifier keys the session in the backing store. It matches the
	// sessionDataKey parameter of every round-trip in the flow.
	Identifier string

	// OTPToken is the currently valid one-time code. Set on issue, replaced
	// on resend, cleared on acceptance.
	OTPToken string
	// OTPIssuedAt is when OTPToken was generated. A code older than
	// OTP.TokenTTL never validates; the session may outlive the code.
	OTPIssuedAt time.Time
	// User is the principal resolved in a prior step. Nil before the first
	// authenticator runs; must be non-nil before any challenge is issued.
	User *AuthenticatedUser
	// StatusCode distinguishes first-attempt rendering from error-retry
	// rendering. Empty means first attempt.
	StatusCode string
	// CodeMismatch is set after a failed comparison and cleared on success
	// or fresh issue.
	CodeMismatch bool
	// IsRetrying is supplied by the framework when the submission is a retry.
	IsRetrying bool
	// ScreenValue is the masked mobile number rendered on the OTP page.
	ScreenValue string
	// MobileNumber is the resolved destination number, kept so a resend can
	// reuse it without another claim lookup.
	MobileNumber string

	// Pass-through context used only for URL construction.
	TenantDomain     string
	QueryParams      string
	CallerSessionKey string
}

// UserStore is the claim read/write contract the authenticator consumes from
// the surrounding identity server. Claim URIs come from [ClaimConfig].
type UserStore interface {
	// GetUserClaimValue returns the stored claim value, or "" when the claim
	// is unset. profile selects the claim profile ("" for default).
	GetUserClaimValue(ctx context.Context, username, claimURI, profile string) (string, error)
	// SetUserClaimValues writes claim values back to the store. Used for
	// backup-code invalidation and mobile number self-update.
	SetUserClaimValues(ctx context.Context, username string, claims map[string]string, profile string) error
}

// SMSSender delivers a generated code to a mobile number. Implementations
// own gateway protocol, timeouts, and retries; a returned error is treated
// as recoverable by the flow controller.
type SMSSender interface {
	Send(ctx context.Context, mobileNumber, code, correlationID string) error
}

// SettingsProvider resolves per-tenant authenticator settings. The default
// provider serves the static [PolicyConfig]/[PageConfig]/[MaskingConfig]
// from [Config]; multi-tenant deployments inject their own.
type SettingsProvider interface {
	Settings(ctx context.Context, tenantDomain, authenticatorName string) (Settings, error)
}

// Settings is the resolved per-tenant view consumed by the flow controller.
type Settings struct {
	Mandatory               bool
	SendOTPDirectlyToMobile bool
	RetryEnabled            bool
	BackupCodesEnabled      bool
	MobileNumberUpdate      bool
	UserOptOutEnabled       bool

	VisibleDigits int
	DigitsOrder   MaskingOrder

	LoginPage               string
	ErrorPage               string
	MobileNumberRequestPage string
}

type staticSettingsProvider struct {
	settings Settings
}

func (p staticSettingsProvider) Settings(context.Context, string, string) (Settings, error) {
	return p.settings, nil
}

func settingsFromConfig(cfg Config) Settings {
	return Settings{
		Mandatory:               cfg.Policy.Mandatory,
		SendOTPDirectlyToMobile: cfg.Policy.SendOTPDirectlyToMobile,
		RetryEnabled:            cfg.Policy.RetryEnabled,
		BackupCodesEnabled:      cfg.Policy.BackupCodesEnabled,
		MobileNumberUpdate:      cfg.Policy.MobileNumberUpdate,
		UserOptOutEnabled:       cfg.Policy.UserOptOutEnabled,
		VisibleDigits:           cfg.Masking.VisibleDigits,
		DigitsOrder:             cfg.Masking.Order,
		LoginPage:               cfg.Pages.Login,
		ErrorPage:               cfg.Pages.Error,
		MobileNumberRequestPage: cfg.Pages.MobileNumberRequest,
	}
}
