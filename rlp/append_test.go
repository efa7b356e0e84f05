package rlp

import (
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMatchesReflection(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 255, 256, 1 << 32, 1<<64 - 1} {
		want, err := EncodeToBytes(v)
		require.NoError(t, err)
		assert.Equal(t, want, AppendUint64(nil, v), "uint64 %d", v)
		assert.Equal(t, want, EncodeUint64(v), "uint64 %d", v)
		assert.Equal(t, want, AppendBigInt(nil, new(big.Int).SetUint64(v)), "big %d", v)
		assert.Equal(t, want, AppendUint256(nil, uint256.NewInt(v)), "uint256 %d", v)
	}
	for _, n := range []int{0, 1, 55, 56, 300} {
		data := []byte(strings.Repeat("\x81", n))
		want, err := EncodeToBytes(data)
		require.NoError(t, err)
		assert.Equal(t, want, AppendBytes(nil, data), "len %d", n)
		assert.Len(t, want, StringSize(n))
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	want, err := EncodeToBytes(huge)
	require.NoError(t, err)
	assert.Equal(t, want, AppendBigInt(nil, huge))
	u, _ := uint256.FromBig(huge)
	assert.Equal(t, want, AppendUint256(nil, u))
}

func TestWrapList(t *testing.T) {
	assert.Equal(t, []byte{0xc0}, WrapList(nil))
	payload := append(EncodeBytes20([20]byte{1}), EncodeUint64(7)...)
	got := WrapList(payload)
	want, err := EncodeToBytes([]any{[20]byte{1}, uint64(7)})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, ListSize(len(payload)))

	long := make([]byte, 70)
	wrapped := WrapList(long)
	assert.Equal(t, []byte{0xf8, 70}, wrapped[:2])
	assert.Len(t, wrapped, ListSize(70))

	payload64k := make([]byte, 1<<16)
	assert.Equal(t, []byte{0xf9 + 1, 0x01, 0x00, 0x00}, AppendListHeader(nil, len(payload64k)))
}

func TestEncodeBytes32(t *testing.T) {
	var h [32]byte
	h[31] = 0xaa
	got := EncodeBytes32(h)
	want, err := EncodeToBytes(h)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, byte(0xa0), got[0])
}
