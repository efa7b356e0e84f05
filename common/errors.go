package common

import "github.com/pkg/errors"

// Error kinds shared by every package in the module. Callers match them with
// errors.Is; the wrapped message carries the offending detail.
var (
	// ErrInvalidInput is returned for malformed lengths, missing hex prefixes
	// and values that cannot be converted to bytes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAddress is returned when an address is not exactly 20 bytes
	// or its hex form is malformed.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidSignature is returned for out-of-range signature values and
	// impossible public key recoveries.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidAccountData is returned when an account field violates its
	// length or sign constraint.
	ErrInvalidAccountData = errors.New("invalid account data")

	// ErrUnsupportedParameter is returned for parameters outside the supported
	// set, such as an unknown Keccak width.
	ErrUnsupportedParameter = errors.New("unsupported parameter")
)
