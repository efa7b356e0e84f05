package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/ebfe/keccak"
	"github.com/eth2030/ethutil/common"
	"github.com/eth2030/ethutil/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const testMsg = "0x3c9229289a6125f7fdf1885a77bb12c37a8d3b4962d936f7e3084dece32a3ca1"

func TestKeccakWidths(t *testing.T) {
	msg := common.MustFromHex(testMsg)
	tests := []struct {
		bits int
		want string
	}{
		{224, "9e66938bd8f32c8610444bb524630db496bd58b689f9733182df63ba"},
		{256, "82ff40c0a986c6a5cfad4ddf4c3aa6996f1a7837f9c398e17e5de5cbd5a12b28"},
		{384, "923e0f6a1c324a698139c3f3abbe88ac70bf2e7c02b26192c6124732555a32cef18e81ac91d5d97ce969745409c5bbc6"},
		{512, "36fdacd0339307068e9ed191773a6f11f6f9f99016bd50f87fd529ab7c87e1385f2b7ef1ac257cc78a12dcb3e5804254c6a7b404a6484966b831eadc721c3d24"},
	}
	for _, tt := range tests {
		got, err := Keccak(msg, tt.bits)
		require.NoError(t, err, "bits %d", tt.bits)
		assert.Len(t, got, tt.bits/8)
		assert.Equal(t, tt.want, hex.EncodeToString(got), "Keccak(msg, %d) = %x, want %s", tt.bits, got, tt.want)
	}
}

func TestKeccakUnsupportedWidth(t *testing.T) {
	for _, bits := range []int{0, 128, 255, 1024} {
		_, err := Keccak([]byte("x"), bits)
		assert.ErrorIs(t, err, common.ErrUnsupportedParameter, "bits %d", bits)
	}
}

func TestKeccak256EmptyString(t *testing.T) {
	got := hex.EncodeToString(Keccak256([]byte{}))
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	assert.Equal(t, want, got, "Keccak256(empty) = %s, want %s", got, want)
	assert.Equal(t, types.EmptyCodeHash, Keccak256Hash(nil))
	assert.Equal(t, types.EmptyRootHash, Keccak256Hash([]byte{0x80}))
}

func TestKeccak256Hello(t *testing.T) {
	got := hex.EncodeToString(Keccak256([]byte("hello")))
	want := "1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"
	assert.Equal(t, want, got, "Keccak256(hello) = %s, want %s", got, want)
}

func TestKeccak256MultipleInputs(t *testing.T) {
	assert.Equal(t, Keccak256([]byte("helloworld")), Keccak256([]byte("hello"), []byte("world")))
	assert.Equal(t, Keccak512([]byte("helloworld")), Keccak512([]byte("hello"), []byte("world")))
}

func TestKeccakFromString(t *testing.T) {
	// The hex digits are hashed as text, not decoded.
	got, err := KeccakFromString(testMsg[2:], 256)
	require.NoError(t, err)
	assert.Equal(t, "22ae1937ff93ec72c4d46ff3e854661e3363440acd6f6e4adf8f1a8978382251", hex.EncodeToString(got))
}

func TestKeccakFromHex(t *testing.T) {
	got, err := KeccakFromHex(testMsg, 256)
	require.NoError(t, err)
	assert.Equal(t, "82ff40c0a986c6a5cfad4ddf4c3aa6996f1a7837f9c398e17e5de5cbd5a12b28", hex.EncodeToString(got))

	_, err = KeccakFromHex(testMsg[2:], 256)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestKeccakFromArray(t *testing.T) {
	b, err := common.ToBytes([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 0})
	require.NoError(t, err)
	got, err := Keccak(b, 256)
	require.NoError(t, err)
	assert.Equal(t, "fba8669bd39e3257e64752758f3a0d3218865a15757c6b0bc48b8ef95bc8bfd5", hex.EncodeToString(got))
}

// The 224 and 384 bit widths come from ebfe/keccak; its 256 and 512 bit
// sponges must agree with x/crypto across block boundaries.
func TestLegacyKeccakMatchesSha3(t *testing.T) {
	for _, n := range []int{0, 1, 71, 72, 73, 135, 136, 137, 271, 272, 1000} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 7)
		}
		assert.Equal(t, keccakSum(sha3.NewLegacyKeccak256(), data), keccakSum(keccak.New256(), data), "Keccak-256 len %d", n)
		assert.Equal(t, keccakSum(sha3.NewLegacyKeccak512(), data), keccakSum(keccak.New512(), data), "Keccak-512 len %d", n)
	}
}

