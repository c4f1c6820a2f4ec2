package smsotp

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/smsotp/internal/limiters"
	"github.com/MrEthical07/smsotp/internal/stores"
)

// Builder defines a public type used by smsotp APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	userStore UserStore
	smsSender SMSSender
	settings  SettingsProvider
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserStore describes the withuserstore operation and its observable behavior.
//
// WithUserStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithUserStore(store UserStore) *Builder {
	b.userStore = store
	return b
}

// WithSMSSender describes the withsmssender operation and its observable behavior.
//
// WithSMSSender does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSMSSender(sender SMSSender) *Builder {
	b.smsSender = sender
	return b
}

// WithSettingsProvider describes the withsettingsprovider operation and its observable behavior.
//
// WithSettingsProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSettingsProvider(provider SettingsProvider) *Builder {
	b.settings = provider
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Authenticator, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if b.userStore == nil {
		return nil, errors.New("user store required")
	}

	if b.smsSender == nil && cfg.Policy.SendOTPDirectlyToMobile {
		return nil, errors.New("sms sender required when SendOTPDirectlyToMobile is enabled")
	}

	settings := b.settings
	if settings == nil {
		settings = staticSettingsProvider{settings: settingsFromConfig(cfg)}
	}

	auth := &Authenticator{
		config:    cfg,
		settings:  settings,
		userStore: b.userStore,
		smsSender: b.smsSender,
	}

	auth.sessionStore = stores.NewSessionStore(b.redis, cfg.Session.RedisPrefix)
	auth.attempts = limiters.NewOTPAttemptLimiter(b.redis, limiters.OTPAttemptConfig{
		MaxAttempts: cfg.OTP.MaxAttempts,
		Cooldown:    cfg.OTP.AttemptCooldown,
	})
	auth.assertion = newAssertionSigner(cfg.Assertion)
	auth.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	auth.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return auth, nil
}
