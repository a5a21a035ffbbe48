package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Scan-related messages
	ScanCompletedSuccessMessage = "patient completeness scan completed"
)
