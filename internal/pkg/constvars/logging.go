package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingOperationKey  = "operation"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingQueryKey      = "query"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingScanIDKey            = "scan_id"
	LoggingPatientIDKey         = "patient_id"
	LoggingPatientCountKey      = "patient_count"
	LoggingTargetCountKey       = "target_count"
	LoggingSearchLimitKey       = "search_limit"
	LoggingCandidatesFoundKey   = "candidates_found"
	LoggingCandidatesCheckedKey = "candidates_checked"
	LoggingCompleteCountKey     = "complete_count"
	LoggingCheckKey             = "check"
)
