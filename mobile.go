package smsotp

import (
	"context"
	"fmt"
)

// resolveMobileNumber yields the number a fresh challenge should be sent to.
// A number carried on the request wins when self-update is allowed: it is
// persisted to the user's profile before use, so the next login reads the
// same value from the claim. Otherwise the stored claim is the only source;
// a blank claim means the user must be sent to the capture page.
func (a *Authenticator) resolveMobileNumber(ctx context.Context, user *AuthenticatedUser, requested string, settings Settings) (string, error) {
	if requested != "" {
		if !settings.MobileNumberUpdate {
			return "", ErrMobileUpdateDisabled
		}
		if err := a.updateMobileNumber(ctx, user, requested); err != nil {
			return "", err
		}
		return requested, nil
	}

	number, err := a.userStore.GetUserClaimValue(ctx, user.Username, a.config.Claims.MobileNumber, a.config.Claims.Profile)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
	}
	if number == "" {
		return "", ErrMobileNumberNotFound
	}
	return number, nil
}

func (a *Authenticator) updateMobileNumber(ctx context.Context, user *AuthenticatedUser, number string) error {
	claims := map[string]string{a.config.Claims.MobileNumber: number}
	if err := a.userStore.SetUserClaimValues(ctx, user.Username, claims, a.config.Claims.Profile); err != nil {
		return fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
	}
	a.metricInc(MetricMobileNumberUpdated)
	a.emitAudit(ctx, auditMobileUpdated, user, "", true, nil, nil)
	return nil
}

// userOptedOut reports whether the user disabled the SMS factor on their own
// profile. Only consulted when the deployment allows opting out; any claim
// value other than "true" counts as enabled.
func (a *Authenticator) userOptedOut(ctx context.Context, user *AuthenticatedUser, settings Settings) (bool, error) {
	if !settings.UserOptOutEnabled {
		return false, nil
	}
	v, err := a.userStore.GetUserClaimValue(ctx, user.Username, a.config.Claims.OptOut, a.config.Claims.Profile)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
	}
	return v == "true", nil
}
