package jwtx

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrMalformedStructure reports a token that is not three dot-separated
	// segments.
	ErrMalformedStructure = errors.New("jwtx: token is not a three-segment JWT")

	// ErrInvalidPadding reports a claims segment that is not decodable
	// base64url, whether the length cannot be padded to a valid multiple
	// or the bytes fall outside the alphabet.
	ErrInvalidPadding = errors.New("jwtx: claims segment is not valid base64url")

	// ErrInvalidJSON reports a claims segment that decodes but does not
	// parse as a claims record.
	ErrInvalidJSON = errors.New("jwtx: claims segment is not a valid claims record")
)

// Decode extracts the claims from a compact JWT without verifying the
// signature. The third segment is ignored entirely.
//
// This is deliberate: the client treats decoded claims as a UI hint only and
// relies on the backend and the issuer for real enforcement. Verifying here
// would need the issuer's public keys, which are not provisioned to clients.
func Decode(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedStructure
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, err
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidJSON
	}

	return &claims, nil
}

// decodeSegment decodes a base64url segment, re-padding to a multiple of 4.
// A remainder of 1 can never be valid base64.
func decodeSegment(seg string) ([]byte, error) {
	switch len(seg) % 4 {
	case 1:
		return nil, ErrInvalidPadding
	case 2:
		seg += "=="
	case 3:
		seg += "="
	}

	raw, err := base64.URLEncoding.DecodeString(seg)
	if err != nil {
		return nil, ErrInvalidPadding
	}

	return raw, nil
}
