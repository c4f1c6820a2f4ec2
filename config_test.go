package smsotp

import (
	"testing"
	"time"
)

func TestConfigValidateDefaultsPass(t *testing.T) {
	if err := validateConfig(defaultConfig()); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "otp digits lower bound",
			mutate:    func(c *Config) { c.OTP.Digits = 4 },
			wantValid: true,
		},
		{
			name:      "otp digits too short",
			mutate:    func(c *Config) { c.OTP.Digits = 3 },
			wantValid: false,
		},
		{
			name:      "otp digits too long",
			mutate:    func(c *Config) { c.OTP.Digits = 11 },
			wantValid: false,
		},
		{
			name:      "token ttl zero",
			mutate:    func(c *Config) { c.OTP.TokenTTL = 0 },
			wantValid: false,
		},
		{
			name: "attempt cap without cooldown",
			mutate: func(c *Config) {
				c.OTP.MaxAttempts = 3
				c.OTP.AttemptCooldown = 0
			},
			wantValid: false,
		},
		{
			name: "attempt cap disabled ignores cooldown",
			mutate: func(c *Config) {
				c.OTP.MaxAttempts = 0
				c.OTP.AttemptCooldown = 0
			},
			wantValid: true,
		},
		{
			name:      "masking order invalid",
			mutate:    func(c *Config) { c.Masking.Order = "sideways" },
			wantValid: false,
		},
		{
			name:      "masking order backward",
			mutate:    func(c *Config) { c.Masking.Order = OrderBackward },
			wantValid: true,
		},
		{
			name:      "authenticator name blank",
			mutate:    func(c *Config) { c.AuthenticatorName = "" },
			wantValid: false,
		},
		{
			name:      "login page blank",
			mutate:    func(c *Config) { c.Pages.Login = "" },
			wantValid: false,
		},
		{
			name: "capture page blank with update enabled",
			mutate: func(c *Config) {
				c.Policy.MobileNumberUpdate = true
				c.Pages.MobileNumberRequest = ""
			},
			wantValid: false,
		},
		{
			name: "capture page blank with update disabled",
			mutate: func(c *Config) {
				c.Policy.MobileNumberUpdate = false
				c.Pages.MobileNumberRequest = ""
			},
			wantValid: true,
		},
		{
			name:      "mobile claim blank",
			mutate:    func(c *Config) { c.Claims.MobileNumber = "" },
			wantValid: false,
		},
		{
			name: "backup claim blank with backup enabled",
			mutate: func(c *Config) {
				c.Policy.BackupCodesEnabled = true
				c.Claims.BackupCodes = ""
			},
			wantValid: false,
		},
		{
			name: "session ttl below token ttl",
			mutate: func(c *Config) {
				c.OTP.TokenTTL = 10 * time.Minute
				c.Session.TTL = 5 * time.Minute
			},
			wantValid: false,
		},
		{
			name: "assertion enabled short secret",
			mutate: func(c *Config) {
				c.Assertion.Enabled = true
				c.Assertion.Secret = []byte("short")
			},
			wantValid: false,
		},
		{
			name: "assertion enabled valid secret",
			mutate: func(c *Config) {
				c.Assertion.Enabled = true
				c.Assertion.Secret = []byte("0123456789abcdef")
			},
			wantValid: true,
		},
		{
			name: "audit enabled zero buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := validateConfig(cfg)
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCloneConfigCopiesAssertionSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Assertion.Secret = []byte("0123456789abcdef")

	out := cloneConfig(cfg)
	out.Assertion.Secret[0] = 'X'

	if cfg.Assertion.Secret[0] == 'X' {
		t.Fatal("cloneConfig must copy the assertion secret")
	}
}

func TestBuilderRequiresDependencies(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected error without redis client")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()
	_ = auth

	b := New()
	b.built = true
	if _, err := b.Build(); err == nil {
		t.Fatal("expected error when builder reused")
	}
}
