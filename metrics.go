package smsotp

import "sync/atomic"

// MetricID defines a public type used by smsotp APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricChallengeSent is an exported constant or variable used by the SMS OTP authenticator.
	MetricChallengeSent MetricID = iota
	// MetricChallengeResent is an exported constant or variable used by the SMS OTP authenticator.
	MetricChallengeResent
	// MetricChallengeSkipped is an exported constant or variable used by the SMS OTP authenticator.
	MetricChallengeSkipped
	// MetricDeliveryFailure is an exported constant or variable used by the SMS OTP authenticator.
	MetricDeliveryFailure
	// MetricCodeAccepted is an exported constant or variable used by the SMS OTP authenticator.
	MetricCodeAccepted
	// MetricCodeMismatch is an exported constant or variable used by the SMS OTP authenticator.
	MetricCodeMismatch
	// MetricInvalidSubmission is an exported constant or variable used by the SMS OTP authenticator.
	MetricInvalidSubmission
	// MetricAttemptsExceeded is an exported constant or variable used by the SMS OTP authenticator.
	MetricAttemptsExceeded
	// MetricBackupCodeUsed is an exported constant or variable used by the SMS OTP authenticator.
	MetricBackupCodeUsed
	// MetricBackupCodeFailed is an exported constant or variable used by the SMS OTP authenticator.
	MetricBackupCodeFailed
	// MetricMobileCaptureRedirect is an exported constant or variable used by the SMS OTP authenticator.
	MetricMobileCaptureRedirect
	// MetricMobileNumberUpdated is an exported constant or variable used by the SMS OTP authenticator.
	MetricMobileNumberUpdated
	// MetricLogoutShortCircuit is an exported constant or variable used by the SMS OTP authenticator.
	MetricLogoutShortCircuit
	// MetricAssertionIssued is an exported constant or variable used by the SMS OTP authenticator.
	MetricAssertionIssued

	metricIDCount
)

type paddedCounter struct {
	value uint64
	_     [56]byte
}

// Metrics defines a public type used by smsotp APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot defines a public type used by smsotp APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics may return an error when input validation, dependency calls, or security checks fail.
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled: cfg.Enabled,
	}
}

// Enabled describes the enabled operation and its observable behavior.
//
// Enabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value describes the value operation and its observable behavior.
//
// Value does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters: map[MetricID]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, int(metricIDCount)),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	return s
}
