package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// BackendError is a non-2xx response from the expense backend. A 401 is
// surfaced as-is: the session manager already refreshed proactively, so a
// rejection here means the token is genuinely bad and retrying the same
// request would just repeat the failure.
type BackendError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *BackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

// parseBackendError builds a BackendError from a non-2xx response body. A
// body that is not the backend's JSON error shape still yields a usable
// error carrying the status code.
func parseBackendError(resp *http.Response, body []byte) *BackendError {
	berr := &BackendError{StatusCode: resp.StatusCode}

	if err := json.Unmarshal(body, berr); err != nil || berr.Message == "" {
		berr.Code = ""
		berr.Message = http.StatusText(resp.StatusCode)
	}

	return berr
}
