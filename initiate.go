package smsotp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrEthical07/smsotp/internal"
)

// initiate issues (or re-issues) a challenge: it resolves policy for the
// tenant, decides whether the factor applies at all, resolves the destination
// mobile number, generates and stores a fresh code, attempts delivery, and
// returns the single redirect that drives the next round-trip.
func (a *Authenticator) initiate(ctx context.Context, req Request) (Result, error) {
	sess, err := a.LookupSession(ctx, req.SessionDataKey)
	if err != nil {
		return Result{}, err
	}

	settings, err := a.resolveSettings(ctx, sess.TenantDomain)
	if err != nil {
		return Result{}, err
	}

	user := sess.User
	if user == nil {
		return Result{}, ErrNoAuthenticatedUser
	}

	if !settings.Mandatory {
		optedOut, err := a.userOptedOut(ctx, user, settings)
		if err != nil {
			return Result{}, err
		}
		if optedOut {
			a.metricInc(MetricChallengeSkipped)
			a.emitAudit(ctx, auditChallengeSkipped, user, sess.Identifier, true, nil, nil)
			return Result{Status: StatusSuccessCompleted, Skipped: true}, nil
		}
	}

	if !settings.SendOTPDirectlyToMobile {
		url := buildRedirectURL(settings.ErrorPage, sess.QueryParams+markerSendDisabled, a.config.AuthenticatorName)
		return Result{Status: StatusIncomplete, RedirectURL: url}, nil
	}

	number, err := a.resolveMobileNumber(ctx, user, req.MobileNumber, settings)
	if err != nil {
		if errors.Is(err, ErrMobileNumberNotFound) {
			if settings.MobileNumberUpdate {
				a.metricInc(MetricMobileCaptureRedirect)
				url := buildRedirectURL(settings.MobileNumberRequestPage, sess.QueryParams, a.config.AuthenticatorName)
				return Result{Status: StatusIncomplete, RedirectURL: url}, nil
			}
			return Result{}, ErrMobileUpdateDisabled
		}
		return Result{}, err
	}

	token, err := internal.NewOTP(a.config.OTP.Digits)
	if err != nil {
		return Result{}, fmt.Errorf("generate otp: %w", err)
	}

	sess.OTPToken = token
	sess.OTPIssuedAt = time.Now()
	sess.MobileNumber = number
	sess.ScreenValue = Mask(number, settings.VisibleDigits, settings.DigitsOrder)

	correlationID := correlationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	sendErr := ErrSMSDeliveryFailed
	if a.smsSender != nil {
		sendErr = a.smsSender.Send(ctx, number, token, correlationID)
	}
	if sendErr != nil {
		a.metricInc(MetricDeliveryFailure)
		a.emitAudit(ctx, auditDeliveryFailed, user, sess.Identifier, false, sendErr, map[string]string{
			"correlation_id": correlationID,
		})
		url := buildRedirectURL(settings.MobileNumberRequestPage, sess.QueryParams+markerDeliveryFailure, a.config.AuthenticatorName)
		return Result{Status: StatusIncomplete, RedirectURL: url}, nil
	}

	page, marker := feedbackPage(sess.StatusCode, sess.CodeMismatch, settings.RetryEnabled)

	// Banner state is single-shot: the fresh issue consumes it, so the next
	// cycle renders clean unless a new failure is recorded.
	sess.StatusCode = ""
	sess.CodeMismatch = false

	if err := a.SaveSession(ctx, sess); err != nil {
		return Result{}, err
	}

	base := settings.LoginPage
	if page == pageError {
		base = settings.ErrorPage
	}
	url := buildRedirectURL(base, sess.QueryParams+marker, a.config.AuthenticatorName)

	event, metric := auditChallengeSent, MetricChallengeSent
	if req.Resend {
		event, metric = auditChallengeResent, MetricChallengeResent
	}
	a.metricInc(metric)
	a.emitAudit(ctx, event, user, sess.Identifier, true, nil, map[string]string{
		"correlation_id": correlationID,
		"screen_value":   sess.ScreenValue,
	})

	return Result{Status: StatusIncomplete, RedirectURL: url}, nil
}
