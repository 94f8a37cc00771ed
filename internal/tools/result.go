// Package tools exposes the agent-facing tool operations. Every operation
// validates its inputs, delegates to the domain services and returns a
// uniform result envelope; nothing here raises past its own boundary.
package tools

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the envelope every tool operation returns. Status is always
// set; Report and Data accompany successes, ErrorMessage accompanies
// errors.
type Result struct {
	Status       string         `json:"status"`
	Report       string         `json:"report,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

func success(report string, data map[string]any) *Result {
	return &Result{
		Status: StatusSuccess,
		Report: report,
		Data:   data,
	}
}

func failure(message string) *Result {
	return &Result{
		Status:       StatusError,
		ErrorMessage: message,
	}
}
