package common

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Has0xPrefix reports whether s starts with a lowercase "0x".
func Has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && s[1] == 'x'
}

// IsHexString reports whether s is "0x" followed by zero or more hex digits.
func IsHexString(s string) bool {
	if !Has0xPrefix(s) {
		return false
	}
	for i := 2; i < len(s); i++ {
		if !isHexCharacter(s[i]) {
			return false
		}
	}
	return true
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// PadToEven left-pads s with a single '0' when its length is odd.
func PadToEven(s string) string {
	if len(s)%2 == 1 {
		return "0" + s
	}
	return s
}

// StripHexPrefix removes a leading "0x", if any.
func StripHexPrefix(s string) string {
	if Has0xPrefix(s) {
		return s[2:]
	}
	return s
}

// AddHexPrefix prepends "0x" unless s already carries it.
func AddHexPrefix(s string) string {
	if Has0xPrefix(s) {
		return s
	}
	return "0x" + s
}

// FromHex decodes a 0x-prefixed hex string. An odd number of digits is
// left-padded with a zero nibble, so "0x1" decodes to [0x01].
func FromHex(s string) ([]byte, error) {
	if !IsHexString(s) {
		return nil, errors.Wrapf(ErrInvalidInput, "not a 0x-prefixed hex string: %q", s)
	}
	b, err := hexutil.Decode("0x" + PadToEven(s[2:]))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "decode %q: %v", s, err)
	}
	return b, nil
}

// MustFromHex is like FromHex but panics on malformed input. Intended for
// constants and tests.
func MustFromHex(s string) []byte {
	b, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Bytes2Hex returns the 0x-prefixed lowercase hex encoding of b. An empty
// slice encodes as "0x".
func Bytes2Hex(b []byte) string {
	return hexutil.Encode(b)
}

// UnpadHex strips the prefix and any leading '0' digits from a hex string.
func UnpadHex(s string) (string, error) {
	if !IsHexString(s) {
		return "", errors.Wrapf(ErrInvalidInput, "not a 0x-prefixed hex string: %q", s)
	}
	digits := s[2:]
	i := 0
	for i < len(digits) && digits[i] == '0' {
		i++
	}
	return digits[i:], nil
}
