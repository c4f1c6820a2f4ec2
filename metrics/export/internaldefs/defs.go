package internaldefs

import (
	smsotp "github.com/MrEthical07/smsotp"
)

// CounterDef defines a public type used by smsotp APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   smsotp.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the SMS OTP authenticator.
var CounterDefs = []CounterDef{
	{ID: smsotp.MetricChallengeSent, Name: "smsotp_challenge_sent_total", Help: "Issued OTP challenges."},
	{ID: smsotp.MetricChallengeResent, Name: "smsotp_challenge_resent_total", Help: "Re-issued OTP challenges after a resend request."},
	{ID: smsotp.MetricChallengeSkipped, Name: "smsotp_challenge_skipped_total", Help: "Challenges skipped because the optional factor was disabled for the user."},
	{ID: smsotp.MetricDeliveryFailure, Name: "smsotp_delivery_failure_total", Help: "SMS dispatch failures."},
	{ID: smsotp.MetricCodeAccepted, Name: "smsotp_code_accepted_total", Help: "Submissions matching the stored OTP."},
	{ID: smsotp.MetricCodeMismatch, Name: "smsotp_code_mismatch_total", Help: "Submissions matching neither the stored OTP nor a backup code."},
	{ID: smsotp.MetricInvalidSubmission, Name: "smsotp_invalid_submission_total", Help: "Syntactically invalid submissions (empty code or resend-with-code)."},
	{ID: smsotp.MetricAttemptsExceeded, Name: "smsotp_attempts_exceeded_total", Help: "Validations refused because the failed-attempt cap was reached."},
	{ID: smsotp.MetricBackupCodeUsed, Name: "smsotp_backup_code_used_total", Help: "Successful backup-code authentications."},
	{ID: smsotp.MetricBackupCodeFailed, Name: "smsotp_backup_code_failed_total", Help: "Failed backup-code authentications."},
	{ID: smsotp.MetricMobileCaptureRedirect, Name: "smsotp_mobile_capture_redirect_total", Help: "Redirects to the mobile-capture page."},
	{ID: smsotp.MetricMobileNumberUpdated, Name: "smsotp_mobile_number_updated_total", Help: "Self-service mobile number updates written back to the user store."},
	{ID: smsotp.MetricLogoutShortCircuit, Name: "smsotp_logout_total", Help: "Logout round-trips completed without OTP logic."},
	{ID: smsotp.MetricAssertionIssued, Name: "smsotp_assertion_issued_total", Help: "Signed completion assertions issued."},
}
