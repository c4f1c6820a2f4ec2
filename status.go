package smsotp

// pageKind names the destination class a challenge redirect resolves to.
// The concrete URL comes from PageConfig (or per-tenant Settings) later.
type pageKind int

const (
	pageLogin pageKind = iota
	pageError
)

// Feedback markers appended to the redirect query string. The endpoint pages
// key their error banners off these exact values.
const (
	markerLoginFailure    = "&authFailure=true&authFailureMsg=login.fail.message"
	markerCodeMismatch    = "&authFailure=true&authFailureMsg=code.mismatch"
	markerSendDisabled    = "&smsotp.disable=true"
	markerDeliveryFailure = "&authFailureMsg=unable.to.send.code"
)

// feedbackPage decides where a new challenge redirect should land and which
// feedback marker rides along, based on the outcome of the previous attempt.
//
// A recorded code mismatch outranks everything: it goes to the error page
// with the mismatch marker even when retries are enabled. Otherwise a carried
// status code with retries enabled lands on the error page with the generic
// failure marker. A clean first attempt gets the login page with no marker.
func feedbackPage(statusCode string, codeMismatch, retryEnabled bool) (pageKind, string) {
	if codeMismatch {
		return pageError, markerCodeMismatch
	}
	if statusCode != "" && retryEnabled {
		return pageError, markerLoginFailure
	}
	return pageLogin, ""
}
