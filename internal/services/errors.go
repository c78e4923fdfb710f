package services

import "fmt"

// FetchError marks an external resource (audio file, résumé document,
// portfolio page) that was unreachable or empty.
type FetchError struct {
	URL    string
	Reason string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Reason)
}

// ServiceError marks a non-success response from an external service,
// keeping the raw status and body for the caller.
type ServiceError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error (status %d): %s", e.Service, e.StatusCode, e.Message)
}

// ParseError marks model output that could not be parsed into the structure
// a stage expects.
type ParseError struct {
	Stage  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %s", e.Stage, e.Reason)
}

// ConfigurationError marks a required external-service credential that is
// absent at construction time.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Setting)
}
