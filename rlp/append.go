package rlp

import (
	"encoding/binary"
	"math/big"

	"github.com/holiman/uint256"
)

// Allocation-free encoders for the shapes that dominate account and address
// encoding. They produce the same bytes as EncodeToBytes.

// AppendUint64 appends the RLP encoding of v to dst.
func AppendUint64(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, 0x80)
	}
	if v < 128 {
		return append(dst, byte(v))
	}
	b := putUintBE(v)
	dst = append(dst, 0x80+byte(len(b)))
	return append(dst, b...)
}

// AppendBytes appends the RLP string encoding of data to dst.
func AppendBytes(dst, data []byte) []byte {
	n := len(data)
	if n == 1 && data[0] <= 0x7f {
		return append(dst, data[0])
	}
	if n <= 55 {
		dst = append(dst, 0x80+byte(n))
		return append(dst, data...)
	}
	lb := putUintBE(uint64(n))
	dst = append(dst, 0xb7+byte(len(lb)))
	dst = append(dst, lb...)
	return append(dst, data...)
}

// AppendBigInt appends the minimal big-endian encoding of |i| to dst. Callers
// reject negative values before reaching this point.
func AppendBigInt(dst []byte, i *big.Int) []byte {
	if i.BitLen() <= 64 {
		return AppendUint64(dst, new(big.Int).Abs(i).Uint64())
	}
	return AppendBytes(dst, i.Bytes())
}

// AppendUint256 appends the RLP encoding of i to dst.
func AppendUint256(dst []byte, i *uint256.Int) []byte {
	if i.IsUint64() {
		return AppendUint64(dst, i.Uint64())
	}
	return AppendBytes(dst, i.Bytes())
}

// AppendListHeader appends a list header for a payload of payloadSize bytes.
// The caller appends exactly that many bytes of encoded items afterwards.
func AppendListHeader(dst []byte, payloadSize int) []byte {
	if payloadSize <= 55 {
		return append(dst, 0xc0+byte(payloadSize))
	}
	lb := putUintBE(uint64(payloadSize))
	dst = append(dst, 0xf7+byte(len(lb)))
	return append(dst, lb...)
}

// WrapList wraps an already encoded payload in a list header.
func WrapList(payload []byte) []byte {
	dst := make([]byte, 0, ListSize(len(payload)))
	dst = AppendListHeader(dst, len(payload))
	return append(dst, payload...)
}

// EncodeUint64 returns the RLP encoding of v.
func EncodeUint64(v uint64) []byte {
	return AppendUint64(make([]byte, 0, 9), v)
}

// EncodeBytes32 encodes a hash-sized value: 0xa0 followed by the 32 bytes.
func EncodeBytes32(data [32]byte) []byte {
	buf := make([]byte, 33)
	buf[0] = 0x80 + 32
	copy(buf[1:], data[:])
	return buf
}

// EncodeBytes20 encodes an address-sized value: 0x94 followed by the 20 bytes.
func EncodeBytes20(data [20]byte) []byte {
	buf := make([]byte, 21)
	buf[0] = 0x80 + 20
	copy(buf[1:], data[:])
	return buf
}

// ListSize returns the encoded size of a list with the given payload size.
func ListSize(payloadSize int) int {
	if payloadSize <= 55 {
		return 1 + payloadSize
	}
	return 1 + uintByteLen(uint64(payloadSize)) + payloadSize
}

// StringSize returns the encoded size of a byte string of length dataLen,
// assuming the worst case for single bytes.
func StringSize(dataLen int) int {
	if dataLen <= 55 {
		return 1 + dataLen
	}
	return 1 + uintByteLen(uint64(dataLen)) + dataLen
}

// putUintBE encodes u as big-endian with no leading zeros.
func putUintBE(u uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], u)
	for i := 0; i < 8; i++ {
		if buf[i] != 0 {
			return buf[i:]
		}
	}
	return buf[7:]
}

func uintByteLen(u uint64) int {
	n := 1
	for u >= 1<<8 {
		u >>= 8
		n++
	}
	return n
}
