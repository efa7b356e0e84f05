package crypto

import (
	"hash"

	"github.com/ebfe/keccak"
	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Keccak computes the legacy (pre-FIPS 202) Keccak digest of data with the
// given output width in bits: 224, 256, 384 or 512.
func Keccak(data []byte, bits int) ([]byte, error) {
	switch bits {
	case 224:
		return keccakSum(keccak.New224(), data), nil
	case 256:
		return Keccak256(data), nil
	case 384:
		return keccakSum(keccak.New384(), data), nil
	case 512:
		return Keccak512(data), nil
	default:
		return nil, errors.Wrapf(common.ErrUnsupportedParameter, "keccak width %d", bits)
	}
}

func keccakSum(d hash.Hash, data []byte) []byte {
	d.Write(data)
	return d.Sum(nil)
}

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}

// Keccak512 calculates the Keccak-512 hash of the given data.
func Keccak512(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak512()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// KeccakFromString hashes the UTF-8 bytes of s. The string is not
// interpreted as hex, even when it carries a 0x prefix.
func KeccakFromString(s string, bits int) ([]byte, error) {
	return Keccak([]byte(s), bits)
}

// KeccakFromHex hashes the bytes encoded by a 0x-prefixed hex string.
func KeccakFromHex(s string, bits int) ([]byte, error) {
	b, err := common.FromHex(s)
	if err != nil {
		return nil, err
	}
	return Keccak(b, bits)
}
