package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteUsers = RouteApiV1 + "/users"
	RouteUser  = RouteUsers + "/:user_id"

	// deletion authorization
	RouteUserDeletionAttempts = RouteUser + "/deletion-attempts"
	RouteDeletionAttempts     = RouteApiV1 + "/deletion-attempts"
	RouteDeletionAttempt      = RouteDeletionAttempts + "/:attempt_id"
	RouteDeletionResend       = RouteDeletionAttempt + "/resend"
	RouteDeletionVerify       = RouteDeletionAttempt + "/verify"

	// dev
	RouteDevOTP = RouteApiV1 + "/dev/otp"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
