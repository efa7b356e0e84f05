// Package crypto implements the hashing and secp256k1 primitives used to
// derive, checksum and sign for Ethereum accounts.
package crypto

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/eth2030/ethutil/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	// PrivateKeyLength is the size of a serialized private scalar.
	PrivateKeyLength = 32
	// PublicKeyLength is the size of a raw X || Y public key.
	PublicKeyLength = 64
)

// secp256k1N is the order of the secp256k1 curve.
var secp256k1N = new(big.Int).Set(secp256k1.Params().N)

// secp256k1halfN is half the order, used for the Homestead low-S check.
var secp256k1halfN = new(big.Int).Rsh(secp256k1N, 1)

var (
	secp256k1NU256, _     = uint256.FromBig(secp256k1N)
	secp256k1halfNU256, _ = uint256.FromBig(secp256k1halfN)
)

// GenerateKey returns a fresh random 32-byte private key.
func GenerateKey() ([]byte, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate secp256k1 key")
	}
	return key.Serialize(), nil
}

// IsValidPrivate reports whether k is a scalar in [1, N-1]. A key that is
// not 32 bytes long is an error rather than a false result.
func IsValidPrivate(k []byte) (bool, error) {
	if len(k) != PrivateKeyLength {
		return false, errors.Wrapf(common.ErrInvalidInput, "private key must be %d bytes, got %d", PrivateKeyLength, len(k))
	}
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(k)
	return !overflow && !scalar.IsZero(), nil
}

func toPrivateKey(k []byte) (*secp256k1.PrivateKey, error) {
	ok, err := IsValidPrivate(k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrap(common.ErrInvalidInput, "private key out of range")
	}
	return secp256k1.PrivKeyFromBytes(k), nil
}

// PrivateToPublic returns the 64-byte X || Y public key of k.
func PrivateToPublic(k []byte) ([]byte, error) {
	key, err := toPrivateKey(k)
	if err != nil {
		return nil, err
	}
	return key.PubKey().SerializeUncompressed()[1:], nil
}

// parsePublic accepts a raw 64-byte key or any SEC1 encoding and checks that
// the point lies on the curve.
func parsePublic(pub []byte) (*secp256k1.PublicKey, error) {
	if len(pub) == PublicKeyLength {
		pub = append([]byte{secp256k1.PubKeyFormatUncompressed}, pub...)
	}
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, errors.Wrapf(common.ErrInvalidInput, "public key: %v", err)
	}
	return key, nil
}

// IsValidPublic reports whether pub is a 64-byte X || Y point on the curve.
// With sanitize set, 65-byte uncompressed and 33-byte compressed SEC1 keys
// are accepted as well.
func IsValidPublic(pub []byte, sanitize bool) bool {
	if len(pub) != PublicKeyLength && !sanitize {
		return false
	}
	_, err := parsePublic(pub)
	return err == nil
}

// ImportPublic converts a raw, uncompressed or compressed public key to the
// 64-byte X || Y form.
func ImportPublic(pub []byte) ([]byte, error) {
	key, err := parsePublic(pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeUncompressed()[1:], nil
}

// CompressPubkey converts any accepted public key encoding to the 33-byte
// compressed SEC1 form.
func CompressPubkey(pub []byte) ([]byte, error) {
	key, err := parsePublic(pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeCompressed(), nil
}
