package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeStoreError         = "STORE_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// Never surfaced to callers of the batch or approval paths; used for logging.
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeNotificationFailed = "NOTIFICATION_FAILED"
)
