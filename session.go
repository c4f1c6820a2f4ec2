package smsotp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/smsotp/internal/stores"
)

func sessionToRecord(s *Session, ttl time.Duration) *stores.SessionRecord {
	rec := &stores.SessionRecord{
		OTPToken:         s.OTPToken,
		StatusCode:       s.StatusCode,
		CodeMismatch:     s.CodeMismatch,
		IsRetrying:       s.IsRetrying,
		ScreenValue:      s.ScreenValue,
		MobileNumber:     s.MobileNumber,
		TenantDomain:     s.TenantDomain,
		QueryParams:      s.QueryParams,
		CallerSessionKey: s.CallerSessionKey,
		ExpiresAt:        time.Now().Add(ttl).Unix(),
	}
	if !s.OTPIssuedAt.IsZero() {
		rec.OTPIssuedAt = s.OTPIssuedAt.Unix()
	}
	if s.User != nil {
		rec.HasUser = true
		rec.Username = s.User.Username
		rec.UserTenant = s.User.TenantDomain
	}
	return rec
}

func recordToSession(id string, rec *stores.SessionRecord) *Session {
	s := &Session{
		Identifier:       id,
		OTPToken:         rec.OTPToken,
		StatusCode:       rec.StatusCode,
		CodeMismatch:     rec.CodeMismatch,
		IsRetrying:       rec.IsRetrying,
		ScreenValue:      rec.ScreenValue,
		MobileNumber:     rec.MobileNumber,
		TenantDomain:     rec.TenantDomain,
		QueryParams:      rec.QueryParams,
		CallerSessionKey: rec.CallerSessionKey,
	}
	if rec.OTPIssuedAt > 0 {
		s.OTPIssuedAt = time.Unix(rec.OTPIssuedAt, 0)
	}
	if rec.HasUser {
		s.User = &AuthenticatedUser{Username: rec.Username, TenantDomain: rec.UserTenant}
	}
	return s
}

// LookupSession loads the per-flow state saved by a previous round-trip.
// A missing or expired entry maps to ErrSessionUnavailable so callers can
// distinguish a dead flow from a backend outage.
func (a *Authenticator) LookupSession(ctx context.Context, id string) (*Session, error) {
	rec, err := a.sessionStore.Get(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrSessionNotFound) || errors.Is(err, stores.ErrSessionExpired) {
			return nil, fmt.Errorf("%w: %s", ErrSessionUnavailable, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return recordToSession(id, rec), nil
}

// SaveSession persists the flow state for the next round-trip under the
// configured session TTL.
func (a *Authenticator) SaveSession(ctx context.Context, s *Session) error {
	rec := sessionToRecord(s, a.config.Session.TTL)
	if err := a.sessionStore.Save(ctx, s.Identifier, rec, a.config.Session.TTL); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return nil
}

// DeleteSession drops the flow state once the factor completes or the flow
// is abandoned.
func (a *Authenticator) DeleteSession(ctx context.Context, id string) error {
	if _, err := a.sessionStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return nil
}
