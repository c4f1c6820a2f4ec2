package smsotp

import "strings"

// buildRedirectURL joins a base page, a caller-supplied query string and the
// authenticator discriminator into a single redirect target. queryParams is
// passed through verbatim, repeated keys and all; the discriminator is always
// the final component so feedback markers appended earlier stay inside the
// query string.
func buildRedirectURL(basePage, queryParams, authenticatorName string) string {
	var b strings.Builder
	b.Grow(len(basePage) + len(queryParams) + len(authenticatorName) + 20)

	b.WriteString(basePage)
	if strings.Contains(basePage, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	if queryParams != "" {
		b.WriteString(queryParams)
		b.WriteByte('&')
	}
	b.WriteString("authenticators=")
	b.WriteString(authenticatorName)

	return b.String()
}
