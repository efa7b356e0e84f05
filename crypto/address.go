package crypto

import (
	"math/big"

	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/eth2030/ethutil/rlp"
	"github.com/pkg/errors"
)

// PubkeyToAddress derives the address of a public key:
// Keccak256(X || Y)[12:]. pub is either the 64-byte X || Y form or the
// 65-byte SEC1 form with its 0x04 prefix. The point is not checked against
// the curve.
func PubkeyToAddress(pub []byte) (types.Address, error) {
	switch {
	case len(pub) == PublicKeyLength:
	case len(pub) == PublicKeyLength+1 && pub[0] == 0x04:
		pub = pub[1:]
	default:
		return types.Address{}, errors.Wrapf(common.ErrInvalidInput, "public key must be 64 bytes or 0x04-prefixed 65 bytes, got %d", len(pub))
	}
	return types.BytesToAddress(Keccak256(pub)[12:]), nil
}

// PrivateToAddress derives the address controlled by the private key k.
func PrivateToAddress(k []byte) (types.Address, error) {
	pub, err := PrivateToPublic(k)
	if err != nil {
		return types.Address{}, err
	}
	return PubkeyToAddress(pub)
}

// CreateAddress returns the address of a contract created by from with the
// CREATE opcode: Keccak256(rlp([from, nonce]))[12:].
func CreateAddress(from types.Address, nonce *big.Int) (types.Address, error) {
	if nonce == nil || nonce.Sign() < 0 {
		return types.Address{}, errors.Wrapf(common.ErrInvalidInput, "nonce must be a non-negative integer, got %v", nonce)
	}
	var payload []byte
	payload = rlp.AppendBytes(payload, from.Bytes())
	payload = rlp.AppendBigInt(payload, nonce)
	enc := rlp.WrapList(payload)
	return types.BytesToAddress(Keccak256(enc)[12:]), nil
}

// CreateAddress2 returns the address of a contract created by from with the
// CREATE2 opcode (EIP-1014):
//
//	Keccak256(0xff || from || salt || Keccak256(initCode))[12:]
func CreateAddress2(from types.Address, salt, initCode []byte) (types.Address, error) {
	if len(salt) != 32 {
		return types.Address{}, errors.Wrapf(common.ErrInvalidInput, "salt must be 32 bytes, got %d", len(salt))
	}
	return types.BytesToAddress(Keccak256([]byte{0xff}, from.Bytes(), salt, Keccak256(initCode))[12:]), nil
}
