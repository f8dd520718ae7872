package constants

// Context keys for validated requests
const (
	// Contact context keys
	ContextKeyContact     = "contact"
	ContextKeyFieldUpdate = "fieldUpdate"
	ContextKeyFormID      = "formID"

	// Request context keys
	ContextKeyRequestID = "RequestID"
	ContextKeyRawBody   = "rawBody"
)
