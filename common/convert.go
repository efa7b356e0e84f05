package common

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Byteser is implemented by values with a canonical byte form, such as
// addresses and hashes.
type Byteser interface {
	Bytes() []byte
}

// ToBytes converts a value from the closed set of byte-convertible inputs:
// nil, []byte, 0x-prefixed hex strings, non-negative integers, []int of byte
// values, *big.Int, *uint256.Int and Byteser. Integers are encoded minimal
// big-endian with zero as the single byte 0x00.
func ToBytes(v any) ([]byte, error) {
	switch v := v.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return CopyBytes(v), nil
	case string:
		return FromHex(v)
	case int:
		return int64ToBytes(int64(v))
	case int64:
		return int64ToBytes(v)
	case uint64:
		return uint64ToBytes(v), nil
	case []int:
		out := make([]byte, len(v))
		for i, n := range v {
			if n < 0 || n > 0xff {
				return nil, errors.Wrapf(ErrInvalidInput, "element %d out of byte range: %d", i, n)
			}
			out[i] = byte(n)
		}
		return out, nil
	case *big.Int:
		if v == nil {
			return []byte{}, nil
		}
		if v.Sign() < 0 {
			return nil, errors.Wrapf(ErrInvalidInput, "negative integer %s", v)
		}
		if v.Sign() == 0 {
			return []byte{0}, nil
		}
		return v.Bytes(), nil
	case *uint256.Int:
		if v == nil {
			return []byte{}, nil
		}
		if v.IsZero() {
			return []byte{0}, nil
		}
		return v.Bytes(), nil
	case Byteser:
		return CopyBytes(v.Bytes()), nil
	default:
		return nil, errors.Wrapf(ErrInvalidInput, "cannot convert %T to bytes", v)
	}
}

func int64ToBytes(n int64) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "negative integer %d", n)
	}
	return uint64ToBytes(uint64(n)), nil
}

func uint64ToBytes(n uint64) []byte {
	if n == 0 {
		return []byte{0}
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n)
		n >>= 8
	}
	return CopyBytes(buf[i:])
}
