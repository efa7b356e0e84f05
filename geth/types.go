// Package geth converts between ethutil's types and go-ethereum's. This is the
// only package that imports go-ethereum's core types; everything else uses
// ethutil/core/types.
package geth

import (
	"math/big"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
)

// --- Address and Hash conversion (layout-compatible) ---

// ToGethAddress converts an Address to a go-ethereum Address.
func ToGethAddress(a types.Address) gethcommon.Address {
	return gethcommon.Address(a)
}

// FromGethAddress converts a go-ethereum Address to an Address.
func FromGethAddress(a gethcommon.Address) types.Address {
	return types.Address(a)
}

// ToGethHash converts a Hash to a go-ethereum Hash.
func ToGethHash(h types.Hash) gethcommon.Hash {
	return gethcommon.Hash(h)
}

// FromGethHash converts a go-ethereum Hash to a Hash.
func FromGethHash(h gethcommon.Hash) types.Hash {
	return types.Hash(h)
}

// --- Balance conversion ---

// ToUint256 converts b to a *uint256.Int. nil maps to zero; negative values
// and values wider than 256 bits are rejected.
func ToUint256(b *big.Int) (*uint256.Int, error) {
	if b == nil {
		return new(uint256.Int), nil
	}
	if b.Sign() < 0 {
		return nil, errors.Wrapf(common.ErrInvalidInput, "negative value %s", b)
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.Wrapf(common.ErrInvalidInput, "value %s exceeds 256 bits", b)
	}
	return u, nil
}

// FromUint256 converts *uint256.Int to *big.Int.
func FromUint256(u *uint256.Int) *big.Int {
	if u == nil {
		return new(big.Int)
	}
	return u.ToBig()
}

// --- Account conversion ---

// ToStateAccount converts an Account into go-ethereum's StateAccount. The
// nonce must fit a uint64 and the balance 256 bits.
func ToStateAccount(a *types.Account) (*gethtypes.StateAccount, error) {
	if a == nil {
		return nil, errors.Wrap(common.ErrInvalidAccountData, "nil account")
	}
	nonce := a.Nonce
	if nonce == nil {
		nonce = new(big.Int)
	}
	if nonce.Sign() < 0 || !nonce.IsUint64() {
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "nonce %s does not fit uint64", nonce)
	}
	balance, err := ToUint256(a.Balance)
	if err != nil {
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "balance: %v", err)
	}
	return &gethtypes.StateAccount{
		Nonce:    nonce.Uint64(),
		Balance:  balance,
		Root:     ToGethHash(a.StateRoot),
		CodeHash: common.CopyBytes(a.CodeHash[:]),
	}, nil
}

// FromStateAccount converts a go-ethereum StateAccount. An empty CodeHash
// maps to EmptyCodeHash; any other length than 32 is rejected.
func FromStateAccount(sa *gethtypes.StateAccount) (*types.Account, error) {
	if sa == nil {
		return nil, errors.Wrap(common.ErrInvalidAccountData, "nil account")
	}
	var codeHash []byte
	if len(sa.CodeHash) > 0 {
		codeHash = sa.CodeHash
	}
	return types.NewAccount(
		new(big.Int).SetUint64(sa.Nonce),
		FromUint256(sa.Balance),
		sa.Root[:],
		codeHash,
	)
}
