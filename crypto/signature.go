// Ethereum ECDSA signatures over secp256k1.
//
// V value encoding:
//   - 0 or 1: raw recovery ID
//   - 27 or 28: legacy (pre-EIP-155)
//   - 35 + 2*chainID or 36 + 2*chainID: EIP-155 replay-protected
//
// Signing always produces s in the lower half of the curve order (EIP-2).
package crypto

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// SignatureLength is the size of a packed R || S || V signature.
const SignatureLength = 65

// compactSigOffset is the recovery code offset of decred compact signatures
// for uncompressed keys.
const compactSigOffset = 27

var (
	big27 = big.NewInt(27)
	big35 = big.NewInt(35)
)

// Signature is an ECDSA signature whose V carries the recovery ID in its
// legacy or EIP-155 encoding.
type Signature struct {
	V *big.Int
	R [32]byte
	S [32]byte
}

// Sign signs a 32-byte hash with the private key k. The nonce is derived
// per RFC 6979, so equal inputs give equal signatures. With a nil chainID V
// is 27 or 28; otherwise it is recid + 35 + 2*chainID.
func Sign(hash, k []byte, chainID *big.Int) (*Signature, error) {
	if len(hash) != 32 {
		return nil, errors.Wrapf(common.ErrInvalidInput, "hash must be 32 bytes, got %d", len(hash))
	}
	if chainID != nil && chainID.Sign() < 0 {
		return nil, errors.Wrapf(common.ErrInvalidInput, "negative chain id %s", chainID)
	}
	key, err := toPrivateKey(k)
	if err != nil {
		return nil, err
	}
	compact := ecdsa.SignCompact(key, hash, false)
	recid := compact[0] - compactSigOffset
	if recid > 1 {
		// Only reachable when R overflowed the group order during signing.
		return nil, errors.Wrapf(common.ErrInvalidSignature, "unsupported recovery id %d", recid)
	}
	sig := &Signature{V: EncodeV(recid, chainID)}
	copy(sig.R[:], compact[1:33])
	copy(sig.S[:], compact[33:65])
	return sig, nil
}

// EncodeV encodes a raw recovery ID as 27/28, or per EIP-155 when chainID
// is non-nil.
func EncodeV(recid byte, chainID *big.Int) *big.Int {
	if chainID == nil {
		return big.NewInt(int64(recid) + 27)
	}
	v := new(big.Int).Lsh(chainID, 1)
	v.Add(v, big35)
	return v.Add(v, big.NewInt(int64(recid)))
}

// recoveryID extracts the recovery ID from v, which must be the encoding
// expected for chainID.
func recoveryID(v, chainID *big.Int) (byte, error) {
	if v == nil {
		return 0, errors.Wrap(common.ErrInvalidSignature, "missing v")
	}
	id := new(big.Int)
	if chainID == nil {
		id.Sub(v, big27)
	} else {
		id.Lsh(chainID, 1).Add(id, big35)
		id.Sub(v, id)
	}
	if !id.IsUint64() || id.Uint64() > 1 {
		return 0, errors.Wrapf(common.ErrInvalidSignature, "v %s is not valid for chain id %v", v, chainID)
	}
	return byte(id.Uint64()), nil
}

// NormalizeV splits a V value of unknown encoding into the raw recovery ID
// and the EIP-155 chain ID, which is nil for raw and legacy values.
func NormalizeV(v *big.Int) (byte, *big.Int, error) {
	if v == nil {
		return 0, nil, errors.Wrap(common.ErrInvalidSignature, "missing v")
	}
	if v.IsInt64() {
		switch n := v.Int64(); n {
		case 0, 1:
			return byte(n), nil, nil
		case 27, 28:
			return byte(n - 27), nil, nil
		}
	}
	if v.Cmp(big35) < 0 {
		return 0, nil, errors.Wrapf(common.ErrInvalidSignature, "unrecognized v %s", v)
	}
	diff := new(big.Int).Sub(v, big35)
	recid := byte(diff.Bit(0))
	return recid, diff.Rsh(diff, 1), nil
}

// Ecrecover returns the 64-byte X || Y public key that produced the
// signature (v, r, s) over hash. r and s must be exactly 32 bytes, and v must
// be a legal value for chainID.
func Ecrecover(hash []byte, v *big.Int, r, s []byte, chainID *big.Int) ([]byte, error) {
	if len(r) != 32 || len(s) != 32 {
		return nil, errors.Wrapf(common.ErrInvalidSignature, "r and s must be 32 bytes, got %d and %d", len(r), len(s))
	}
	if len(hash) != 32 {
		return nil, errors.Wrapf(common.ErrInvalidInput, "hash must be 32 bytes, got %d", len(hash))
	}
	recid, err := recoveryID(v, chainID)
	if err != nil {
		return nil, err
	}
	return recoverPublic(hash, recid, r, s)
}

func recoverPublic(hash []byte, recid byte, r, s []byte) ([]byte, error) {
	compact := make([]byte, SignatureLength)
	compact[0] = compactSigOffset + recid
	copy(compact[1:33], r)
	copy(compact[33:], s)
	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, errors.Wrapf(common.ErrInvalidSignature, "recover: %v", err)
	}
	return pub.SerializeUncompressed()[1:], nil
}

// IsValidSignature reports whether (v, r, s) is a well-formed signature:
// r and s are 32 bytes in [1, N-1] and v is 27/28, or 35+2*chainID and
// 36+2*chainID when a chain ID is given. With homestead set, s above N/2 is
// rejected (EIP-2).
func IsValidSignature(v *big.Int, r, s []byte, homestead bool, chainID *big.Int) bool {
	if len(r) != 32 || len(s) != 32 {
		return false
	}
	if _, err := recoveryID(v, chainID); err != nil {
		return false
	}
	rv := new(uint256.Int).SetBytes(r)
	sv := new(uint256.Int).SetBytes(s)
	if rv.IsZero() || sv.IsZero() {
		return false
	}
	if !rv.Lt(secp256k1NU256) || !sv.Lt(secp256k1NU256) {
		return false
	}
	if homestead && sv.Gt(secp256k1halfNU256) {
		return false
	}
	return true
}

// ToRpcSig packs a legacy signature in the 65-byte form used by eth_sign:
// 0x || r || s || (v - 27). Short r and s are left-padded to 32 bytes.
func ToRpcSig(v *big.Int, r, s []byte) (string, error) {
	if v == nil || !v.IsInt64() || (v.Int64() != 27 && v.Int64() != 28) {
		return "", errors.Wrapf(common.ErrInvalidSignature, "v must be 27 or 28, got %v", v)
	}
	if len(r) > 32 || len(s) > 32 {
		return "", errors.Wrapf(common.ErrInvalidInput, "r and s must be at most 32 bytes, got %d and %d", len(r), len(s))
	}
	out := make([]byte, 0, SignatureLength)
	out = append(out, common.SetLengthLeft(r, 32)...)
	out = append(out, common.SetLengthLeft(s, 32)...)
	out = append(out, byte(v.Int64()-27))
	return common.Bytes2Hex(out), nil
}

// FromRpcSig unpacks a signature produced by ToRpcSig. A trailing byte of 0
// or 1 is mapped to V 27 or 28; the legacy 27 and 28 are kept as they are.
func FromRpcSig(sig string) (*Signature, error) {
	b, err := common.FromHex(sig)
	if err != nil {
		return nil, err
	}
	if len(b) != SignatureLength {
		return nil, errors.Wrapf(common.ErrInvalidInput, "rpc signature must be %d bytes, got %d", SignatureLength, len(b))
	}
	v := b[64]
	switch v {
	case 0, 1:
		v += 27
	case 27, 28:
	default:
		return nil, errors.Wrapf(common.ErrInvalidSignature, "invalid recovery byte %d", v)
	}
	out := &Signature{V: big.NewInt(int64(v))}
	copy(out.R[:], b[:32])
	copy(out.S[:], b[32:64])
	return out, nil
}

// ParseSignature parses a 65-byte R || S || V signature whose V is the raw
// recovery ID, and re-encodes V for chainID.
func ParseSignature(b []byte, chainID *big.Int) (*Signature, error) {
	if len(b) != SignatureLength {
		return nil, errors.Wrapf(common.ErrInvalidInput, "signature must be %d bytes, got %d", SignatureLength, len(b))
	}
	recid, _, err := NormalizeV(big.NewInt(int64(b[64])))
	if err != nil {
		return nil, err
	}
	sig := &Signature{V: EncodeV(recid, chainID)}
	copy(sig.R[:], b[:32])
	copy(sig.S[:], b[32:64])
	return sig, nil
}

// RecoveryID returns the raw recovery ID of the signature, whose V must be
// encoded for chainID.
func (sig *Signature) RecoveryID(chainID *big.Int) (byte, error) {
	return recoveryID(sig.V, chainID)
}

// Bytes encodes the signature as 65 bytes: R || S || recid.
func (sig *Signature) Bytes() ([]byte, error) {
	recid, _, err := NormalizeV(sig.V)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, SignatureLength)
	copy(buf[:32], sig.R[:])
	copy(buf[32:64], sig.S[:])
	buf[64] = recid
	return buf, nil
}

// IsValid is IsValidSignature applied to the signature's fields.
func (sig *Signature) IsValid(homestead bool, chainID *big.Int) bool {
	return IsValidSignature(sig.V, sig.R[:], sig.S[:], homestead, chainID)
}

func (sig *Signature) String() string {
	return fmt.Sprintf("Signature{v: %v, r: %x, s: %x}", sig.V, sig.R, sig.S)
}

// SignatureToAddress recovers the address that signed hash.
func SignatureToAddress(hash []byte, sig *Signature, chainID *big.Int) (types.Address, error) {
	if sig == nil {
		return types.Address{}, errors.Wrap(common.ErrInvalidSignature, "nil signature")
	}
	pub, err := Ecrecover(hash, sig.V, sig.R[:], sig.S[:], chainID)
	if err != nil {
		return types.Address{}, err
	}
	return PubkeyToAddress(pub)
}
