package apiclient

import "fmt"

// APIError represents a non-2xx response from the northbound API. The
// router replies with a plain-text body (net/http's http.Error), not a
// structured error object, so Message is the raw response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether the request was rejected for a missing
// or invalid bearer token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsConflict reports whether a config transaction was rejected by the
// registry (a validator refused one of its deltas).
func (e *APIError) IsConflict() bool {
	return e.StatusCode == 409
}
