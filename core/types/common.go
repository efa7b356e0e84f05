// Package types defines the fixed-size value types of the account model:
// addresses, hashes and the four-field account record.
package types

import (
	"bytes"

	"github.com/eth2030/ethutil/common"
	"github.com/pkg/errors"
)

const (
	HashLength    = 32
	AddressLength = 20
)

// Hash represents the 32-byte Keccak256 hash of data.
type Hash [HashLength]byte

// Address represents the 20-byte address of an Ethereum account.
type Address [AddressLength]byte

var (
	// EmptyRootHash is the root of an empty storage trie, Keccak256(rlp("")).
	EmptyRootHash = HexToHash("0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

	// EmptyCodeHash is the hash of empty EVM bytecode, Keccak256("").
	EmptyCodeHash = HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
)

// BytesToHash converts bytes to Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash converts a 0x-prefixed hex string to Hash. Malformed input
// yields the zero hash; use ParseHash to detect it.
func HexToHash(s string) Hash {
	b, _ := common.FromHex(s)
	return BytesToHash(b)
}

// NewHash returns b as a Hash. b must be exactly 32 bytes.
func NewHash(b []byte) (Hash, error) {
	if len(b) != HashLength {
		return Hash{}, errors.Wrapf(common.ErrInvalidInput, "hash must be %d bytes, got %d", HashLength, len(b))
	}
	return BytesToHash(b), nil
}

// ParseHash decodes a 0x-prefixed 64-digit hex string.
func ParseHash(s string) (Hash, error) {
	b, err := common.FromHex(s)
	if err != nil {
		return Hash{}, err
	}
	return NewHash(b)
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the 0x-prefixed lowercase hex form of the hash.
func (h Hash) Hex() string { return common.Bytes2Hex(h[:]) }

// SetBytes sets the hash from a byte slice, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero returns whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// BytesToAddress converts bytes to Address, left-padding if shorter than 20 bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress converts a hex string to Address. Malformed input yields the
// zero address; use ParseAddress to detect it.
func HexToAddress(s string) Address {
	b, _ := common.FromHex(s)
	return BytesToAddress(b)
}

// NewAddress returns b as an Address. b must be exactly 20 bytes.
func NewAddress(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return Address{}, errors.Wrapf(common.ErrInvalidAddress, "address must be %d bytes, got %d", AddressLength, len(b))
	}
	return BytesToAddress(b), nil
}

// ParseAddress decodes a 0x-prefixed 40-digit hex address. Letter case is
// not checked; see IsValidChecksumAddress.
func ParseAddress(s string) (Address, error) {
	if !IsHexAddress(s) {
		return Address{}, errors.Wrapf(common.ErrInvalidAddress, "%q", s)
	}
	b, err := common.FromHex(s)
	if err != nil {
		return Address{}, errors.Wrapf(common.ErrInvalidAddress, "%v", err)
	}
	return BytesToAddress(b), nil
}

// IsHexAddress reports whether s is "0x" followed by exactly 40 hex digits.
func IsHexAddress(s string) bool {
	return len(s) == 2+2*AddressLength && common.IsHexString(s)
}

// ZeroAddress returns the 0x000...000 address as a hex string.
func ZeroAddress() string {
	return Address{}.Hex()
}

// IsZeroAddress reports whether the hex address s is the zero address.
func IsZeroAddress(s string) (bool, error) {
	a, err := ParseAddress(s)
	if err != nil {
		return false, err
	}
	return a.IsZero(), nil
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the 0x-prefixed lowercase hex form of the address.
func (a Address) Hex() string { return common.Bytes2Hex(a[:]) }

// SetBytes sets the address from a byte slice.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// IsZero returns whether the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Equal reports whether a and b hold the same bytes.
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }
