package common

// Zeros returns a zero-filled slice of n bytes.
func Zeros(n int) []byte {
	return make([]byte, n)
}

// CopyBytes returns an exact copy of b. A nil slice stays nil.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// SetLengthLeft left-pads b with zeros to n bytes. Longer input keeps its
// rightmost n bytes.
func SetLengthLeft(b []byte, n int) []byte {
	out := make([]byte, n)
	if len(b) >= n {
		copy(out, b[len(b)-n:])
		return out
	}
	copy(out[n-len(b):], b)
	return out
}

// SetLengthRight right-pads b with zeros to n bytes. Longer input keeps its
// leftmost n bytes.
func SetLengthRight(b []byte, n int) []byte {
	out := make([]byte, n)
	copy(out, b)
	return out
}

// TrimLeftZeroes returns a subslice of b without leading zero bytes.
func TrimLeftZeroes(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

// BytesToJSON converts a byte slice, or an arbitrarily nested []any of byte
// slices, into the same shape with every byte slice rendered as 0x hex.
// Values of any other type map to nil.
func BytesToJSON(v any) any {
	switch v := v.(type) {
	case []byte:
		return Bytes2Hex(v)
	case [][]byte:
		out := make([]any, len(v))
		for i, b := range v {
			out[i] = Bytes2Hex(b)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = BytesToJSON(elem)
		}
		return out
	default:
		return nil
	}
}
