package smsotp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// memUserStore is an in-memory UserStore with per-call failure injection.
type memUserStore struct {
	mu     sync.RWMutex
	claims map[string]map[string]string

	failReads  bool
	failWrites bool
}

func newMemUserStore() *memUserStore {
	return &memUserStore{claims: make(map[string]map[string]string)}
}

func (s *memUserStore) put(username, claimURI, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims[username] == nil {
		s.claims[username] = make(map[string]string)
	}
	s.claims[username][claimURI] = value
}

func (s *memUserStore) get(username, claimURI string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims[username][claimURI]
}

func (s *memUserStore) GetUserClaimValue(_ context.Context, username, claimURI, _ string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failReads {
		return "", errors.New("user store read failure")
	}
	return s.claims[username][claimURI], nil
}

func (s *memUserStore) SetUserClaimValues(_ context.Context, username string, claims map[string]string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errors.New("user store write failure")
	}
	if s.claims[username] == nil {
		s.claims[username] = make(map[string]string)
	}
	for k, v := range claims {
		s.claims[username][k] = v
	}
	return nil
}

// recordSender captures dispatched codes and can be told to fail.
type recordSender struct {
	mu    sync.Mutex
	sends []recordedSend
	fail  bool
}

type recordedSend struct {
	mobileNumber  string
	code          string
	correlationID string
}

func (s *recordSender) Send(_ context.Context, mobileNumber, code, correlationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("gateway unreachable")
	}
	s.sends = append(s.sends, recordedSend{mobileNumber, code, correlationID})
	return nil
}

func (s *recordSender) last(t *testing.T) recordedSend {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sends) == 0 {
		t.Fatal("expected at least one dispatched SMS")
	}
	return s.sends[len(s.sends)-1]
}

func (s *recordSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sends)
}

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Metrics.Enabled = true
	return cfg
}

// newTestAuthenticator builds an authenticator against a fresh miniredis.
// mutate may be nil.
func newTestAuthenticator(t *testing.T, mutate func(*Config)) (*Authenticator, *memUserStore, *recordSender, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	store := newMemUserStore()
	store.put("alice", cfg.Claims.MobileNumber, "0778899531")

	sender := &recordSender{}

	auth, err := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(store).
		WithSMSSender(sender).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	done := func() {
		auth.Close()
		_ = rdb.Close()
		mr.Close()
	}
	return auth, store, sender, done
}

// seedSession stores a flow session the way the orchestrator would before
// handing the round-trip to the authenticator.
func seedSession(t *testing.T, auth *Authenticator, sess *Session) {
	t.Helper()
	if err := auth.SaveSession(context.Background(), sess); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
}

func aliceSession(id string) *Session {
	return &Session{
		Identifier: id,
		User:       &AuthenticatedUser{Username: "alice", TenantDomain: "carbon.super"},
	}
}
