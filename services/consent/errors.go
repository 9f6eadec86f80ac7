package consent

import "errors"

var (
	// ErrValidation is returned when the issuance request is incomplete.
	ErrValidation = errors.New("profile id and at least one allowed field are required")

	// ErrMalformedToken is returned for tokens that cannot be decoded.
	ErrMalformedToken = errors.New("malformed consent token")

	// ErrInvalidSignature is returned for tampered or forged tokens.
	ErrInvalidSignature = errors.New("consent token signature is invalid")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("consent token has expired")
)
