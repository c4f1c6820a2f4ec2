package smsotp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseRequestDistinguishesEmptyFromAbsentCode(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1", nil)
	req := ParseRequest(r)
	if req.CodeSubmitted {
		t.Fatal("absent code parameter must not count as submitted")
	}

	r = httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1&OTPcode=", nil)
	req = ParseRequest(r)
	if !req.CodeSubmitted || req.Code != "" {
		t.Fatalf("empty code parameter must count as submitted, got %+v", req)
	}
}

func TestParseRequestReadsAllParameters(t *testing.T) {
	form := url.Values{
		"OTPcode":        {"123456"},
		"resendCode":     {"true"},
		"MOBILE_NUMBER":  {"0711111111"},
		"sessionDataKey": {"s1"},
	}
	r := httptest.NewRequest(http.MethodPost, "/smsotp", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req := ParseRequest(r)
	if req.Code != "123456" || !req.CodeSubmitted || !req.Resend ||
		req.MobileNumber != "0711111111" || req.SessionDataKey != "s1" {
		t.Fatalf("unexpected parse result %+v", req)
	}
}

func TestParseRequestTracksResendPresence(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	// An unparseable value still marks the round-trip as ours, but does not
	// trigger a resend.
	r := httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1&resendCode=resendCode", nil)
	req := ParseRequest(r)
	if !req.ResendSubmitted || req.Resend {
		t.Fatalf("expected presence without resend, got %+v", req)
	}
	if !auth.CanHandle(req) {
		t.Fatal("resend parameter presence must be handled")
	}

	r = httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1", nil)
	req = ParseRequest(r)
	if req.ResendSubmitted || req.Resend {
		t.Fatalf("absent resend parameter must stay unset, got %+v", req)
	}
}

func TestCanHandle(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	if auth.CanHandle(Request{SessionDataKey: "s1"}) {
		t.Fatal("bare session key must not be handled")
	}
	if !auth.CanHandle(Request{Code: "123456"}) {
		t.Fatal("code parameter must be handled")
	}
	if !auth.CanHandle(Request{Resend: true}) {
		t.Fatal("resend parameter must be handled")
	}
	if !auth.CanHandle(Request{MobileNumber: "0711111111"}) {
		t.Fatal("mobile number parameter must be handled")
	}
}

func TestContextIdentifier(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	if got := auth.ContextIdentifier(Request{SessionDataKey: "s9"}); got != "s9" {
		t.Fatalf("expected s9, got %s", got)
	}
}

func TestHandleHTTPInitiateRedirects(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	seedSession(t, auth, aliceSession("s1"))

	r := httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1", nil)
	rec := httptest.NewRecorder()
	auth.HandleHTTP(rec, r)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasSuffix(loc, "&authenticators=SMSOTP") {
		t.Fatalf("expected discriminator in redirect, got %s", loc)
	}
}

func TestHandleHTTPCorrectCodeCompletes(t *testing.T) {
	auth, _, sender, done := newTestAuthenticator(t, nil)
	defer done()

	seedSession(t, auth, aliceSession("s1"))
	if _, err := auth.Process(context.Background(), Request{SessionDataKey: "s1"}); err != nil {
		t.Fatalf("initiate failed: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1&OTPcode="+sender.last(t).code, nil)
	rec := httptest.NewRecorder()
	auth.HandleHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "success_completed") {
		t.Fatalf("expected completion status in body, got %s", rec.Body.String())
	}
}

func TestHandleHTTPEmptyCodeIsBadRequest(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	r := httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1&OTPcode=", nil)
	rec := httptest.NewRecorder()
	auth.HandleHTTP(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty code, got %d", rec.Code)
	}
}

func TestHandleHTTPDeadSessionIsGone(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	r := httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=never-seeded", nil)
	rec := httptest.NewRecorder()
	auth.HandleHTTP(rec, r)

	if rec.Code != http.StatusGone {
		t.Fatalf("expected 410 for dead session, got %d", rec.Code)
	}
}

func TestHandleHTTPMismatchIsUnauthorized(t *testing.T) {
	auth, _, _, done := newTestAuthenticator(t, nil)
	defer done()

	sess := aliceSession("s1")
	sess.OTPToken = "123456"
	seedSession(t, auth, sess)

	r := httptest.NewRequest(http.MethodGet, "/smsotp?sessionDataKey=s1&OTPcode=000000", nil)
	rec := httptest.NewRecorder()
	auth.HandleHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for mismatch, got %d", rec.Code)
	}
}
