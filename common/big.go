package common

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// BigToBytes returns the minimal big-endian encoding of the absolute value
// of x. Zero and nil encode as an empty slice.
func BigToBytes(x *big.Int) []byte {
	if x == nil {
		return []byte{}
	}
	return x.Bytes()
}

// BytesToUint64 interprets b as a big-endian unsigned integer.
func BytesToUint64(b []byte) (uint64, error) {
	b = TrimLeftZeroes(b)
	if len(b) > 8 {
		return 0, errors.Wrapf(ErrInvalidInput, "%d bytes overflow uint64", len(b))
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// FromSigned interprets b as a 256-bit two's complement number. Input longer
// than 32 bytes keeps its rightmost 32 bytes.
func FromSigned(b []byte) *big.Int {
	u := new(uint256.Int).SetBytes(b)
	if u.Sign() >= 0 {
		return u.ToBig()
	}
	neg := new(uint256.Int).Neg(u)
	return new(big.Int).Neg(neg.ToBig())
}

// ToUnsigned returns the minimal big-endian 256-bit two's complement form of
// x. Values outside the signed 256-bit range wrap modulo 2^256.
func ToUnsigned(x *big.Int) []byte {
	if x == nil {
		return []byte{}
	}
	abs := new(big.Int).Abs(x)
	u, _ := uint256.FromBig(abs)
	if x.Sign() < 0 {
		u.Neg(u)
	}
	return u.Bytes()
}
