package types

import (
	"math/big"
	"strings"

	"github.com/eth2030/ethutil/common"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// ToChecksumAddress returns the mixed-case checksum form of a hex address.
// With a nil chain id the result follows EIP-55. A non-nil chain id selects
// EIP-1191, which mixes the decimal chain id and "0x" into the hashed text.
func ToChecksumAddress(hexAddr string, chainID *big.Int) (string, error) {
	if !IsHexAddress(hexAddr) {
		return "", errors.Wrapf(common.ErrInvalidAddress, "%q", hexAddr)
	}
	if chainID != nil && chainID.Sign() < 0 {
		return "", errors.Wrapf(common.ErrInvalidInput, "negative chain id %s", chainID)
	}
	return checksumHex(strings.ToLower(hexAddr[2:]), chainID), nil
}

// IsValidChecksumAddress reports whether hexAddr is well formed and its
// letter case matches the checksum for chainID exactly.
func IsValidChecksumAddress(hexAddr string, chainID *big.Int) bool {
	sum, err := ToChecksumAddress(hexAddr, chainID)
	return err == nil && sum == hexAddr
}

// ChecksumHex returns the checksum form of the address for chainID, nil
// meaning EIP-55. It panics if chainID is negative; use ToChecksumAddress for
// chain ids that have not been validated.
func (a Address) ChecksumHex(chainID *big.Int) string {
	if chainID != nil && chainID.Sign() < 0 {
		panic("types: negative chain id " + chainID.String())
	}
	return checksumHex(a.Hex()[2:], chainID)
}

// checksumHex uppercases letter i of lower when nibble i of the digest is at least 8.
func checksumHex(lower string, chainID *big.Int) string {
	prefix := ""
	if chainID != nil {
		prefix = chainID.String() + "0x"
	}
	sha := sha3.NewLegacyKeccak256()
	sha.Write([]byte(prefix + lower))
	digest := sha.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}
