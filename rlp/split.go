package rlp

import "io"

// Split returns the kind of the first value in b, its content and the bytes
// that follow it.
func Split(b []byte) (k Kind, content, rest []byte, err error) {
	k, ts, cs, err := readKind(b)
	if err != nil {
		return 0, nil, b, err
	}
	return k, b[ts : ts+cs], b[ts+cs:], nil
}

// SplitString splits b into the content of an RLP string and any remaining bytes.
func SplitString(b []byte) (content, rest []byte, err error) {
	k, content, rest, err := Split(b)
	if err != nil {
		return nil, b, err
	}
	if k == List {
		return nil, b, ErrExpectedString
	}
	return content, rest, nil
}

// SplitList splits b into the content of a list and any remaining bytes.
func SplitList(b []byte) (content, rest []byte, err error) {
	k, content, rest, err := Split(b)
	if err != nil {
		return nil, b, err
	}
	if k != List {
		return nil, b, ErrExpectedList
	}
	return content, rest, nil
}

// CountValues counts the encoded values in b.
func CountValues(b []byte) (int, error) {
	n := 0
	for ; len(b) > 0; n++ {
		_, tagsize, size, err := readKind(b)
		if err != nil {
			return 0, err
		}
		b = b[tagsize+size:]
	}
	return n, nil
}

// readKind parses the header at the start of buf. It rejects non-canonical
// headers and sizes that run past the end of buf.
func readKind(buf []byte) (k Kind, tagsize, contentsize uint64, err error) {
	if len(buf) == 0 {
		return 0, 0, 0, io.ErrUnexpectedEOF
	}
	b := buf[0]
	switch {
	case b < 0x80:
		k, tagsize, contentsize = Byte, 0, 1
	case b < 0xb8:
		k, tagsize, contentsize = String, 1, uint64(b-0x80)
		if contentsize == 1 && len(buf) > 1 && buf[1] < 0x80 {
			return 0, 0, 0, ErrCanonSize
		}
	case b < 0xc0:
		k, tagsize = String, uint64(b-0xb7)+1
		contentsize, err = readSize(buf[1:], b-0xb7)
	case b < 0xf8:
		k, tagsize, contentsize = List, 1, uint64(b-0xc0)
	default:
		k, tagsize = List, uint64(b-0xf7)+1
		contentsize, err = readSize(buf[1:], b-0xf7)
	}
	if err != nil {
		return 0, 0, 0, err
	}
	if contentsize > uint64(len(buf))-tagsize {
		return 0, 0, 0, ErrValueTooLarge
	}
	return k, tagsize, contentsize, nil
}

// readSize reads a long-form size of slen bytes.
func readSize(b []byte, slen byte) (uint64, error) {
	if int(slen) > len(b) {
		return 0, io.ErrUnexpectedEOF
	}
	if b[0] == 0 {
		return 0, ErrNonCanonicalSize
	}
	var s uint64
	for _, c := range b[:slen] {
		s = s<<8 | uint64(c)
	}
	if s < 56 {
		return 0, ErrNonCanonicalSize
	}
	return s, nil
}
