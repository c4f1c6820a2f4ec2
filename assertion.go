package smsotp

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// assertionSigner issues and verifies the signed completion assertion handed
// to the orchestrator on success. HMAC-SHA256 with a shared secret; the
// orchestrator side verifies with the same secret.
type assertionSigner struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func newAssertionSigner(cfg AssertionConfig) *assertionSigner {
	if !cfg.Enabled {
		return nil
	}
	return &assertionSigner{
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
	}
}

func (s *assertionSigner) issue(user *AuthenticatedUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":           s.issuer,
		"sub":           user.FullyQualified(),
		"tenant":        user.TenantDomain,
		"authenticator": AuthenticatorName,
		"jti":           uuid.NewString(),
		"iat":           now.Unix(),
		"exp":           now.Add(s.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign completion assertion: %w", err)
	}
	return signed, nil
}

// VerifyAssertion validates a completion assertion previously issued by this
// authenticator and returns the subject it was issued for. Returns
// ErrAssertionDisabled when assertions are not configured.
func (a *Authenticator) VerifyAssertion(token string) (string, error) {
	if a.assertion == nil {
		return "", ErrAssertionDisabled
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.assertion.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(a.assertion.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssertionInvalid, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrAssertionInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrAssertionInvalid
	}
	return sub, nil
}
