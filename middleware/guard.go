package middleware

import (
	"context"
	"net/http"
	"strings"

	smsotp "github.com/MrEthical07/smsotp"
)

type subjectContextKey struct{}

// SubjectFromContext returns the asserted subject injected by [RequireAssertion].
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectContextKey{}).(string)
	return sub, ok
}

// RequireAssertion rejects requests that do not carry a valid completion
// assertion. The assertion is read from the X-Completion-Assertion header, or
// from a Bearer Authorization header when the dedicated header is absent.
func RequireAssertion(auth *smsotp.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := assertionToken(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			subject, err := auth.VerifyAssertion(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectContextKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func assertionToken(r *http.Request) (string, bool) {
	if v := r.Header.Get("X-Completion-Assertion"); v != "" {
		return v, true
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
