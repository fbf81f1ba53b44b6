package oidc

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// OAuth2 error codes per RFC 6749.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidClient        = "invalid_client"
	ErrorCodeInvalidGrant         = "invalid_grant"
	ErrorCodeUnauthorizedClient   = "unauthorized_client"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
	ErrorCodeInvalidScope         = "invalid_scope"
	ErrorCodeServerError          = "server_error"
	ErrorCodeInvalidToken         = "invalid_token"
)

// OAuth2Error represents an error response from the issuer per RFC 6749.
// The session layer matches on Code and StatusCode to decide whether a
// failure is a credential problem or an issuer problem.
type OAuth2Error struct {
	// StatusCode is the HTTP status the issuer answered with
	StatusCode int `json:"-"`

	// Code is the OAuth2 error code (e.g. "invalid_grant")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *OAuth2Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsInvalidGrant reports whether the issuer rejected the presented grant
// (bad credentials on a password grant, expired or revoked refresh token on
// a refresh grant).
func (e *OAuth2Error) IsInvalidGrant() bool {
	return e.Code == ErrorCodeInvalidGrant || e.StatusCode == http.StatusUnauthorized
}

// parseErrorResponse turns a non-2xx issuer response into an *OAuth2Error.
// Bodies that are not a standard OAuth2 error still produce a typed error
// with a generic code, so callers always get an OAuth2Error for wire-level
// rejections.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &OAuth2Error{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &OAuth2Error{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
