package ai

import "fmt"

// ConfigurationError indicates a required credential or setting is missing.
// It is returned before any network I/O happens.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ai: missing configuration: %s", e.Missing)
}

// ServiceError indicates the remote service answered with a non-success
// status. Body is kept for diagnostics.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	body := e.Body
	if len(body) > 512 {
		body = body[:512]
	}
	return fmt.Sprintf("ai: service returned status %d: %s", e.StatusCode, body)
}

// MalformedResponseError indicates a success response whose payload did not
// contain the expected text field.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("ai: malformed response: %s", e.Reason)
}
