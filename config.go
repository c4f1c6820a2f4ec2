package smsotp

import (
	"errors"
	"time"
)

// Config defines a public type used by smsotp APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// AuthenticatorName is the discriminator appended to every redirect so
	// downstream routing can identify which factor produced it.
	AuthenticatorName string

	OTP       OTPConfig
	Policy    PolicyConfig
	Pages     PageConfig
	Masking   MaskingConfig
	Claims    ClaimConfig
	Session   SessionConfig
	Assertion AssertionConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
OTP CONFIG
====================================
*/

// OTPConfig defines a public type used by smsotp APIs.
//
// OTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OTPConfig struct {
	// Digits is the fixed length of generated codes.
	Digits int
	// TokenTTL bounds how long an issued code stays valid in the session.
	TokenTTL time.Duration
	// MaxAttempts caps failed validations per session before the flow fails
	// fatally. 0 disables the cap.
	MaxAttempts int
	// AttemptCooldown is the window the failed-attempt counter lives for.
	AttemptCooldown time.Duration
}

/*
====================================
POLICY CONFIG
====================================
*/

// PolicyConfig defines a public type used by smsotp APIs.
//
// PolicyConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PolicyConfig struct {
	// Mandatory makes the factor non-skippable for every user.
	Mandatory bool
	// SendOTPDirectlyToMobile enables automatic SMS dispatch. When false the
	// code is expected to reach the user through an alternate channel.
	SendOTPDirectlyToMobile bool
	// RetryEnabled lets a user retry after a failed attempt.
	RetryEnabled bool
	// BackupCodesEnabled allows pre-provisioned single-use codes in place of
	// a live OTP.
	BackupCodesEnabled bool
	// MobileNumberUpdate enables the self-service mobile-capture page.
	MobileNumberUpdate bool
	// UserOptOutEnabled honors the per-user opt-out claim when the factor is
	// optional.
	UserOptOutEnabled bool
}

/*
====================================
PAGE CONFIG
====================================
*/

// PageConfig defines a public type used by smsotp APIs.
//
// PageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PageConfig struct {
	Login               string
	Error               string
	MobileNumberRequest string
}

/*
====================================
MASKING CONFIG
====================================
*/

// MaskingOrder selects which end of the mobile number stays visible on the
// OTP entry page.
type MaskingOrder string

const (
	// OrderForward keeps the first N characters visible.
	OrderForward MaskingOrder = "forward"
	// OrderBackward keeps the last N characters visible.
	OrderBackward MaskingOrder = "backward"
)

// MaskingConfig defines a public type used by smsotp APIs.
//
// MaskingConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MaskingConfig struct {
	VisibleDigits int
	Order         MaskingOrder
}

/*
====================================
CLAIM CONFIG
====================================
*/

// ClaimConfig names the user-store claim URIs the authenticator reads and
// writes. Profile selects the claim profile on every access ("" = default).
type ClaimConfig struct {
	MobileNumber string
	BackupCodes  string
	OptOut       string
	Profile      string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by smsotp APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string
	// TTL bounds how long session state survives between round-trips.
	TTL time.Duration
}

/*
====================================
ASSERTION CONFIG
====================================
*/

// AssertionConfig controls the signed completion assertion issued when the
// factor succeeds. Orchestrators verify it with [Authenticator.VerifyAssertion].
type AssertionConfig struct {
	Enabled bool
	Secret  []byte
	TTL     time.Duration
	Issuer  string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by smsotp APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by smsotp APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

const (
	// AuthenticatorName is the default redirect discriminator.
	AuthenticatorName = "SMSOTP"

	defaultLoginPage               = "smsotpauthenticationendpoint/smsotp.jsp"
	defaultErrorPage               = "smsotpauthenticationendpoint/smsotpError.jsp"
	defaultMobileNumberRequestPage = "smsotpauthenticationendpoint/mobile.jsp"

	defaultMobileNumberClaim = "urn:claims:mobile"
	defaultBackupCodesClaim  = "urn:claims:otp-backup-codes"
	defaultOptOutClaim       = "urn:claims:smsotp-disabled"
)

func defaultConfig() Config {
	return Config{
		AuthenticatorName: AuthenticatorName,
		OTP: OTPConfig{
			Digits:          6,
			TokenTTL:        5 * time.Minute,
			MaxAttempts:     5,
			AttemptCooldown: 15 * time.Minute,
		},
		Policy: PolicyConfig{
			Mandatory:               false,
			SendOTPDirectlyToMobile: true,
			RetryEnabled:            true,
			BackupCodesEnabled:      false,
			MobileNumberUpdate:      true,
			UserOptOutEnabled:       false,
		},
		Pages: PageConfig{
			Login:               defaultLoginPage,
			Error:               defaultErrorPage,
			MobileNumberRequest: defaultMobileNumberRequestPage,
		},
		Masking: MaskingConfig{
			VisibleDigits: 4,
			Order:         OrderForward,
		},
		Claims: ClaimConfig{
			MobileNumber: defaultMobileNumberClaim,
			BackupCodes:  defaultBackupCodesClaim,
			OptOut:       defaultOptOutClaim,
		},
		Session: SessionConfig{
			RedisPrefix: "sos",
			TTL:         10 * time.Minute,
		},
		Assertion: AssertionConfig{
			Enabled: false,
			TTL:     2 * time.Minute,
			Issuer:  "smsotp",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.Assertion.Secret != nil {
		out.Assertion.Secret = append([]byte(nil), cfg.Assertion.Secret...)
	}
	return out
}

func validateConfig(cfg Config) error {
	if cfg.AuthenticatorName == "" {
		return errors.New("AuthenticatorName must not be empty")
	}
	if cfg.OTP.Digits < 4 || cfg.OTP.Digits > 10 {
		return errors.New("OTP Digits must be between 4 and 10")
	}
	if cfg.OTP.TokenTTL <= 0 {
		return errors.New("OTP TokenTTL must be > 0")
	}
	if cfg.OTP.MaxAttempts < 0 {
		return errors.New("OTP MaxAttempts must be >= 0")
	}
	if cfg.OTP.MaxAttempts > 0 && cfg.OTP.AttemptCooldown <= 0 {
		return errors.New("OTP AttemptCooldown must be > 0 when MaxAttempts is set")
	}
	if cfg.Masking.VisibleDigits < 0 {
		return errors.New("Masking VisibleDigits must be >= 0")
	}
	if cfg.Masking.Order != OrderForward && cfg.Masking.Order != OrderBackward {
		return errors.New("Masking Order must be 'forward' or 'backward'")
	}
	if cfg.Pages.Login == "" || cfg.Pages.Error == "" {
		return errors.New("Pages Login and Error must not be empty")
	}
	if cfg.Policy.MobileNumberUpdate && cfg.Pages.MobileNumberRequest == "" {
		return errors.New("Pages MobileNumberRequest must not be empty when MobileNumberUpdate is enabled")
	}
	if cfg.Claims.MobileNumber == "" {
		return errors.New("Claims MobileNumber must not be empty")
	}
	if cfg.Policy.BackupCodesEnabled && cfg.Claims.BackupCodes == "" {
		return errors.New("Claims BackupCodes must not be empty when BackupCodesEnabled is true")
	}
	if cfg.Policy.UserOptOutEnabled && cfg.Claims.OptOut == "" {
		return errors.New("Claims OptOut must not be empty when UserOptOutEnabled is true")
	}
	if cfg.Session.TTL <= 0 {
		return errors.New("Session TTL must be > 0")
	}
	if cfg.Session.TTL < cfg.OTP.TokenTTL {
		return errors.New("Session TTL must be >= OTP TokenTTL")
	}
	if cfg.Assertion.Enabled {
		if len(cfg.Assertion.Secret) < 16 {
			return errors.New("Assertion Secret must be at least 16 bytes")
		}
		if cfg.Assertion.TTL <= 0 {
			return errors.New("Assertion TTL must be > 0")
		}
	}
	if cfg.Audit.Enabled && cfg.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0")
	}
	return nil
}
