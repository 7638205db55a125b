package acoustid

import "fmt"

// WebServiceError reports a failed or structurally unusable response from the
// AcoustID web service. A lookup either yields a full candidate list or fails
// with this error; there is no partial output.
type WebServiceError struct {
	// Status carries the non-"ok" status reported by the service, when the
	// failure came from the response status field.
	Status  string
	Message string
}

func (e *WebServiceError) Error() string {
	return "acoustid: " + e.Message
}

func statusError(status string) *WebServiceError {
	return &WebServiceError{Status: status, Message: fmt.Sprintf("status: %s", status)}
}
