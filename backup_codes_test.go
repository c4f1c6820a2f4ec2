package smsotp

import (
	"context"
	"errors"
	"testing"
)

func TestBackupCodeMatchRemovesExactlyConsumedEntry(t *testing.T) {
	auth, store, _, done := newTestAuthenticator(t, nil)
	defer done()

	user := &AuthenticatedUser{Username: "alice", TenantDomain: "carbon.super"}
	store.put("alice", auth.config.Claims.BackupCodes, "12345,4568,1234,7896")

	if err := auth.consumeBackupCode(context.Background(), user, "1234"); err != nil {
		t.Fatalf("consumeBackupCode failed: %v", err)
	}

	if got := store.get("alice", auth.config.Claims.BackupCodes); got != "12345,4568,7896" {
		t.Fatalf("expected 12345,4568,7896 after consume, got %s", got)
	}
}

func TestBackupCodeMatchingIsExact(t *testing.T) {
	auth, store, _, done := newTestAuthenticator(t, nil)
	defer done()

	user := &AuthenticatedUser{Username: "alice", TenantDomain: "carbon.super"}
	store.put("alice", auth.config.Claims.BackupCodes, "12345,4568,7896")

	// "1234" is a prefix of "12345" but not an entry.
	if err := auth.consumeBackupCode(context.Background(), user, "1234"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch for prefix match, got %v", err)
	}
	if got := store.get("alice", auth.config.Claims.BackupCodes); got != "12345,4568,7896" {
		t.Fatalf("stored list must be untouched on mismatch, got %s", got)
	}
}

func TestBackupCodeSingleUse(t *testing.T) {
	auth, store, _, done := newTestAuthenticator(t, nil)
	defer done()

	user := &AuthenticatedUser{Username: "alice", TenantDomain: "carbon.super"}
	store.put("alice", auth.config.Claims.BackupCodes, "4568")

	if err := auth.consumeBackupCode(context.Background(), user, "4568"); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if err := auth.consumeBackupCode(context.Background(), user, "4568"); err == nil {
		t.Fatal("expected second use of the same code to fail")
	}
}

func TestBackupCodeMissingClaimIsNotConfigured(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	user := &AuthenticatedUser{Username: "alice", TenantDomain: "carbon.super"}
	err := auth.consumeBackupCode(context.Background(), user, "1234")
	if !errors.Is(err, ErrBackupCodesNotConfigured) {
		t.Fatalf("expected ErrBackupCodesNotConfigured, got %v", err)
	}
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected authentication-failed category, got %v", err)
	}
}

func TestBackupCodeWriteBackFailureIsFatal(t *testing.T) {
	auth, store, _, done := newTestAuthenticator(t, nil)
	defer done()

	user := &AuthenticatedUser{Username: "alice", TenantDomain: "carbon.super"}
	store.put("alice", auth.config.Claims.BackupCodes, "1234")
	store.failWrites = true

	err := auth.consumeBackupCode(context.Background(), user, "1234")
	if !errors.Is(err, ErrUserStoreUnavailable) {
		t.Fatalf("expected ErrUserStoreUnavailable, got %v", err)
	}
}
