package rlp

import (
	"bytes"
	"testing"
)

func FuzzDecode(f *testing.F) {
	f.Add([]byte{0x80})                                                 // empty string
	f.Add([]byte{0x83, 0x64, 0x6f, 0x67})                               // "dog"
	f.Add([]byte{0x01})                                                 // uint(1)
	f.Add([]byte{0x82, 0x04, 0x00})                                     // uint(1024)
	f.Add([]byte{0xc0})                                                 // empty list
	f.Add([]byte{0xc8, 0x83, 0x63, 0x61, 0x74, 0x83, 0x64, 0x6f, 0x67}) // ["cat","dog"]
	f.Add([]byte{0xc7, 0xc0, 0xc1, 0xc0, 0xc3, 0xc0, 0xc1, 0xc0})       // set theory
	f.Add([]byte{0xb8, 0x01, 0x61})                                     // non-canonical size

	f.Fuzz(func(t *testing.T, data []byte) {
		var s string
		_ = DecodeBytes(data, &s)
		var u uint64
		_ = DecodeBytes(data, &u)
		var ss []string
		_ = DecodeBytes(data, &ss)

		// Anything that decodes as a generic tree re-encodes to the same bytes.
		var tree any
		if err := DecodeBytes(data, &tree); err != nil {
			return
		}
		enc, err := EncodeToBytes(tree)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		if !bytes.Equal(enc, data) {
			t.Fatalf("round trip mismatch: %x != %x", enc, data)
		}
	})
}
