package session

import "errors"

var (
	// ErrInvalidCredentials reports a login rejected by the issuer. The
	// caller should show a message and stay on the login view.
	ErrInvalidCredentials = errors.New("username or password was not accepted")

	// ErrIssuerUnreachable reports a transport-level failure talking to the
	// issuer. The operation can be retried.
	ErrIssuerUnreachable = errors.New("could not reach the sign-in service")

	// ErrSessionExpired reports that the refresh token itself was rejected.
	// The session is gone; the caller must send the user back to login.
	ErrSessionExpired = errors.New("session expired, please sign in again")
)
