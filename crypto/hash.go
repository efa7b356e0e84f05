package crypto

import (
	"strconv"

	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/eth2030/ethutil/rlp"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160"
)

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Sha256FromString hashes the bytes of a 0x-prefixed hex string.
func Sha256FromString(s string) ([]byte, error) {
	b, err := common.FromHex(s)
	if err != nil {
		return nil, err
	}
	return Sha256(b), nil
}

// Ripemd160 returns the 20-byte RIPEMD-160 digest of data. With padded set
// the digest is left-padded with zeros to 32 bytes.
func Ripemd160(data []byte, padded bool) []byte {
	h := ripemd160.New()
	h.Write(data)
	sum := h.Sum(nil)
	if padded {
		return common.SetLengthLeft(sum, 32)
	}
	return sum
}

// Ripemd160FromString hashes the bytes of a 0x-prefixed hex string.
func Ripemd160FromString(s string, padded bool) ([]byte, error) {
	b, err := common.FromHex(s)
	if err != nil {
		return nil, err
	}
	return Ripemd160(b, padded), nil
}

// RlpHash returns the Keccak-256 hash of the RLP encoding of v.
func RlpHash(v any) (types.Hash, error) {
	enc, err := rlp.EncodeToBytes(v)
	if err != nil {
		return types.Hash{}, err
	}
	return Keccak256Hash(enc), nil
}

// HashPersonalMessage returns the hash signed by eth_sign:
//
//	keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg)
func HashPersonalMessage(msg []byte) []byte {
	prefix := "\x19Ethereum Signed Message:\n" + strconv.Itoa(len(msg))
	return Keccak256([]byte(prefix), msg)
}
