package handler

// DiagnosisRequest is the JSON body accepted by POST /diagnose.
// Message is a pointer so a missing key can be told apart from a present one.
type DiagnosisRequest struct {
	Message *string `json:"message"`
}

// DiagnosisResponse carries the model's text verbatim.
type DiagnosisResponse struct {
	Analysis string `json:"analysis"`
}

// ErrorResponse is returned instead of DiagnosisResponse on any failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	errNoMessage       = "No message provided"
	errInvalidJSON     = "Invalid JSON body"
	errBodyTooLarge    = "Request body too large"
	errUpstreamFailed  = "Completion service request failed"
	errUpstreamTimeout = "Completion service timed out"
)
