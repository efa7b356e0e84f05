package types

import (
	"fmt"
	"io"
	"math/big"

	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/rlp"
	"github.com/pkg/errors"
)

// Account is the state record of an address: [nonce, balance, stateRoot, codeHash].
type Account struct {
	Nonce     *big.Int
	Balance   *big.Int
	StateRoot Hash // storage trie root (EmptyRootHash for no storage)
	CodeHash  Hash // keccak256 of code (EmptyCodeHash for EOAs)
}

// AccountData is the keyed form of an account. Each field is optional and
// accepts any value common.ToBytes accepts.
type AccountData struct {
	Nonce     any
	Balance   any
	StateRoot any
	CodeHash  any
}

// NewAccount validates and assembles an account. Nil arguments take their
// defaults: zero nonce and balance, EmptyRootHash and EmptyCodeHash. A
// non-nil hash must be exactly 32 bytes and integers must not be negative.
func NewAccount(nonce, balance *big.Int, stateRoot, codeHash []byte) (*Account, error) {
	a := &Account{
		Nonce:     new(big.Int),
		Balance:   new(big.Int),
		StateRoot: EmptyRootHash,
		CodeHash:  EmptyCodeHash,
	}
	if nonce != nil {
		if nonce.Sign() < 0 {
			return nil, errors.Wrapf(common.ErrInvalidAccountData, "nonce must be non-negative, got %s", nonce)
		}
		a.Nonce.Set(nonce)
	}
	if balance != nil {
		if balance.Sign() < 0 {
			return nil, errors.Wrapf(common.ErrInvalidAccountData, "balance must be non-negative, got %s", balance)
		}
		a.Balance.Set(balance)
	}
	if stateRoot != nil {
		if len(stateRoot) != HashLength {
			return nil, errors.Wrapf(common.ErrInvalidAccountData, "stateRoot must be %d bytes, got %d", HashLength, len(stateRoot))
		}
		a.StateRoot = BytesToHash(stateRoot)
	}
	if codeHash != nil {
		if len(codeHash) != HashLength {
			return nil, errors.Wrapf(common.ErrInvalidAccountData, "codeHash must be %d bytes, got %d", HashLength, len(codeHash))
		}
		a.CodeHash = BytesToHash(codeHash)
	}
	return a, nil
}

// AccountFromData builds an account from its keyed form.
func AccountFromData(d AccountData) (*Account, error) {
	nonce, err := optionalInt("nonce", d.Nonce)
	if err != nil {
		return nil, err
	}
	balance, err := optionalInt("balance", d.Balance)
	if err != nil {
		return nil, err
	}
	stateRoot, err := optionalBytes("stateRoot", d.StateRoot)
	if err != nil {
		return nil, err
	}
	codeHash, err := optionalBytes("codeHash", d.CodeHash)
	if err != nil {
		return nil, err
	}
	return NewAccount(nonce, balance, stateRoot, codeHash)
}

// AccountFromValues builds an account from the ordered byte values
// [nonce, balance, stateRoot, codeHash].
func AccountFromValues(values [][]byte) (*Account, error) {
	if len(values) != 4 {
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "expected 4 values, got %d", len(values))
	}
	return NewAccount(
		new(big.Int).SetBytes(values[0]),
		new(big.Int).SetBytes(values[1]),
		nonNil(values[2]),
		nonNil(values[3]),
	)
}

// AccountFromRLP decodes a serialized account.
func AccountFromRLP(b []byte) (*Account, error) {
	a := new(Account)
	if err := rlp.DecodeBytes(b, a); err != nil {
		if errors.Is(err, common.ErrInvalidAccountData) {
			return nil, err
		}
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "%v", err)
	}
	return a, nil
}

// Serialize returns the RLP encoding [nonce, balance, stateRoot, codeHash]
// with minimal big-endian integers.
func (a *Account) Serialize() []byte {
	return a.appendRLP(nil, false)
}

// SlimRLP returns the snapshot encoding of the account, where an empty
// storage root or empty code hash is stored as an empty string.
func (a *Account) SlimRLP() []byte {
	return a.appendRLP(nil, true)
}

func (a *Account) appendRLP(dst []byte, slim bool) []byte {
	var payload []byte
	payload = rlp.AppendBigInt(payload, orZero(a.Nonce))
	payload = rlp.AppendBigInt(payload, orZero(a.Balance))
	if slim && a.StateRoot == EmptyRootHash {
		payload = rlp.AppendBytes(payload, nil)
	} else {
		payload = append(payload, rlp.EncodeBytes32(a.StateRoot)...)
	}
	if slim && a.CodeHash == EmptyCodeHash {
		payload = rlp.AppendBytes(payload, nil)
	} else {
		payload = append(payload, rlp.EncodeBytes32(a.CodeHash)...)
	}
	dst = rlp.AppendListHeader(dst, len(payload))
	return append(dst, payload...)
}

// AccountFromSlimRLP decodes the snapshot encoding produced by SlimRLP.
func AccountFromSlimRLP(b []byte) (*Account, error) {
	var values [][]byte
	if err := rlp.DecodeBytes(b, &values); err != nil {
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "%v", err)
	}
	if len(values) != 4 {
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "expected 4 values, got %d", len(values))
	}
	if len(values[2]) == 0 {
		values[2] = EmptyRootHash.Bytes()
	}
	if len(values[3]) == 0 {
		values[3] = EmptyCodeHash.Bytes()
	}
	for i, v := range values[:2] {
		if len(v) > 0 && v[0] == 0 {
			return nil, errors.Wrapf(common.ErrInvalidAccountData, "value %d: %v", i, rlp.ErrCanonInt)
		}
	}
	return AccountFromValues(values)
}

// EncodeRLP implements rlp.Encoder.
func (a *Account) EncodeRLP(w io.Writer) error {
	_, err := w.Write(a.Serialize())
	return err
}

// DecodeRLP implements rlp.Decoder. Integers must be canonical and both
// hashes exactly 32 bytes.
func (a *Account) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	nonce, err := s.BigInt()
	if err != nil {
		return errors.Wrap(err, "nonce")
	}
	balance, err := s.BigInt()
	if err != nil {
		return errors.Wrap(err, "balance")
	}
	stateRoot, err := s.Bytes()
	if err != nil {
		return errors.Wrap(err, "stateRoot")
	}
	codeHash, err := s.Bytes()
	if err != nil {
		return errors.Wrap(err, "codeHash")
	}
	if err := s.ListEnd(); err != nil {
		return err
	}
	acc, err := NewAccount(nonce, balance, nonNil(stateRoot), nonNil(codeHash))
	if err != nil {
		return err
	}
	*a = *acc
	return nil
}

// IsEmpty reports whether the account has zero nonce, zero balance, an empty
// storage trie and no code.
func (a *Account) IsEmpty() bool {
	return orZero(a.Nonce).Sign() == 0 &&
		orZero(a.Balance).Sign() == 0 &&
		a.StateRoot == EmptyRootHash &&
		a.CodeHash == EmptyCodeHash
}

// IsContract reports whether the account carries code.
func (a *Account) IsContract() bool {
	return a.CodeHash != EmptyCodeHash
}

// Equal reports whether both accounts hold the same four fields.
func (a *Account) Equal(b *Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return orZero(a.Nonce).Cmp(orZero(b.Nonce)) == 0 &&
		orZero(a.Balance).Cmp(orZero(b.Balance)) == 0 &&
		a.StateRoot == b.StateRoot &&
		a.CodeHash == b.CodeHash
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	return &Account{
		Nonce:     new(big.Int).Set(orZero(a.Nonce)),
		Balance:   new(big.Int).Set(orZero(a.Balance)),
		StateRoot: a.StateRoot,
		CodeHash:  a.CodeHash,
	}
}

func (a *Account) String() string {
	return fmt.Sprintf("Account{nonce: %s, balance: %s, stateRoot: %s, codeHash: %s}",
		orZero(a.Nonce), orZero(a.Balance), a.StateRoot.Hex(), a.CodeHash.Hex())
}

var zero = new(big.Int)

func orZero(x *big.Int) *big.Int {
	if x == nil {
		return zero
	}
	return x
}

// nonNil keeps an empty slice distinct from an absent value so that a
// present-but-empty hash fails the length check.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func optionalInt(field string, v any) (*big.Int, error) {
	if v == nil {
		return nil, nil
	}
	b, err := common.ToBytes(v)
	if err != nil {
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "%s: %v", field, err)
	}
	return new(big.Int).SetBytes(b), nil
}

func optionalBytes(field string, v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := common.ToBytes(v)
	if err != nil {
		return nil, errors.Wrapf(common.ErrInvalidAccountData, "%s: %v", field, err)
	}
	return b, nil
}
