package rlp

import "github.com/pkg/errors"

var (
	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = errors.New("rlp: expected string or byte")

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = errors.New("rlp: expected list")

	// ErrCanonSize is returned when a single byte below 0x80 is wrapped in a string header.
	ErrCanonSize = errors.New("rlp: non-canonical size information")

	// ErrEOL is returned when a read runs past the end of the current list.
	ErrEOL = errors.New("rlp: end of list")

	// ErrCanonInt is returned when an integer has leading zero bytes.
	ErrCanonInt = errors.New("rlp: non-canonical integer encoding")

	// ErrNonCanonicalSize is returned when a long-form size prefix could have
	// been written in the short form or carries leading zeros.
	ErrNonCanonicalSize = errors.New("rlp: non-canonical size")

	// ErrUint64Range is returned when a decoded integer does not fit the target type.
	ErrUint64Range = errors.New("rlp: integer overflows target type")

	// ErrValueTooLarge is returned when a declared size exceeds the available input.
	ErrValueTooLarge = errors.New("rlp: value size exceeds available input")

	// ErrMoreThanOneValue is returned when bytes remain after the top-level value.
	ErrMoreThanOneValue = errors.New("rlp: input contains more than one value")

	// ErrTooManyElements is returned when a list holds more items than the target accepts.
	ErrTooManyElements = errors.New("rlp: input list has too many elements")

	// ErrWrongArrayLength is returned when a string does not match a fixed byte array length.
	ErrWrongArrayLength = errors.New("rlp: input string length does not match array length")

	// ErrNegativeInt is returned when encoding a negative integer.
	ErrNegativeInt = errors.New("rlp: cannot encode negative integer")

	// ErrUnsupportedType is returned for Go types with no RLP mapping.
	ErrUnsupportedType = errors.New("rlp: unsupported type")

	// ErrNoPointer is returned when decoding into a non-pointer or nil pointer.
	ErrNoPointer = errors.New("rlp: decode target must be a non-nil pointer")
)
