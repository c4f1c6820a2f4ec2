package smsotp

import (
	"context"
	"fmt"
	"strings"
)

// consumeBackupCode checks a submitted code against the user's stored backup
// code list and, on a match, rewrites the list without the consumed entry so
// each code works exactly once. The claim value is a comma-separated list;
// matching is exact, case-sensitive, with no trimming, so "1234" matches the
// entry "1234" but not "12345".
func (a *Authenticator) consumeBackupCode(ctx context.Context, user *AuthenticatedUser, code string) error {
	stored, err := a.userStore.GetUserClaimValue(ctx, user.Username, a.config.Claims.BackupCodes, a.config.Claims.Profile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
	}
	if stored == "" {
		return ErrBackupCodesNotConfigured
	}

	codes := strings.Split(stored, ",")
	match := -1
	for i, c := range codes {
		if c == code {
			match = i
			break
		}
	}
	if match < 0 {
		return ErrCodeMismatch
	}

	remaining := strings.Join(append(codes[:match:match], codes[match+1:]...), ",")
	claims := map[string]string{a.config.Claims.BackupCodes: remaining}
	if err := a.userStore.SetUserClaimValues(ctx, user.Username, claims, a.config.Claims.Profile); err != nil {
		return fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
	}
	return nil
}
