package smsotp

import (
	"errors"
	"net/http"
)

// HTTP parameter names the hosted pages submit.
const (
	paramCode           = "OTPcode"
	paramResend         = "resendCode"
	paramMobileNumber   = "MOBILE_NUMBER"
	paramSessionDataKey = "sessionDataKey"
)

// ParseRequest maps an inbound HTTP round-trip to the typed [Request].
// Presence of the code parameter is tracked separately from its value so an
// empty submission is still routed to validation.
func ParseRequest(r *http.Request) Request {
	_ = r.ParseForm()

	req := Request{
		Code:           r.Form.Get(paramCode),
		MobileNumber:   r.Form.Get(paramMobileNumber),
		SessionDataKey: r.Form.Get(paramSessionDataKey),
	}
	_, req.CodeSubmitted = r.Form[paramCode]
	if _, ok := r.Form[paramResend]; ok {
		req.ResendSubmitted = true
		req.Resend = r.Form.Get(paramResend) == "true"
	}
	return req
}

// HandleHTTP adapts the authenticator to a plain HTTP endpoint: it parses
// the round-trip, runs [Authenticator.Process], and either issues the single
// redirect or reports completion. Orchestrators embedding the authenticator
// in a larger pipeline should call Process directly instead.
func (a *Authenticator) HandleHTTP(w http.ResponseWriter, r *http.Request) {
	req := ParseRequest(r)

	result, err := a.Process(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrSessionUnavailable):
			http.Error(w, err.Error(), http.StatusGone)
		default:
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
		return
	}

	if result.Status == StatusIncomplete {
		http.Redirect(w, r, result.RedirectURL, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if result.Assertion != "" {
		w.Header().Set("X-Completion-Assertion", result.Assertion)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Status.String()))
}
