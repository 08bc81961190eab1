package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values for the "result" label.
const (
	UsersListed       = "users_listed_total"
	UsersListFailed   = "users_list_failed_total"
	UserDeleted       = "user_deleted_total"
	UserDeleteFailed  = "user_delete_failed_total"
	OTPIssued         = "otp_issued_total"
	OTPAccepted       = "otp_accepted_total"
	OTPRejected       = "otp_rejected_total"
	OTPExpired        = "otp_expired_total"
	OTPDeliveryFailed = "otp_delivery_failed_total"
	OTPRateLimited    = "otp_rate_limited_total"
	AppRequests       = "app_requests_total"
)

func counterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: "useradmin",
		Name:      "general_counters",
	}
}

// NewCounter registers the counter with the default registry.
func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(counterOpts(), []string{"result"})
}

// NewUnregisteredCounter is NewCounter without registration, for tests and
// tools that build more than one.
func NewUnregisteredCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(counterOpts(), []string{"result"})
}
