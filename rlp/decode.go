package rlp

import (
	"bytes"
	"io"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Kind represents the type of an RLP value.
type Kind int

const (
	Byte   Kind = iota // Single byte in [0x00, 0x7f].
	String             // RLP string (including empty string).
	List               // RLP list.
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case String:
		return "String"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

// Decoder is implemented by types that need custom decoding rules.
type Decoder interface {
	DecodeRLP(*Stream) error
}

// Decode reads all of r and decodes a single RLP value into val, which must
// be a non-nil pointer.
func Decode(r io.Reader, val any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return DecodeBytes(data, val)
}

// DecodeBytes decodes b into the value pointed to by val. The input must hold
// exactly one value; trailing bytes yield ErrMoreThanOneValue.
func DecodeBytes(b []byte, val any) error {
	s := NewStreamBytes(b)
	if err := s.Decode(val); err != nil {
		return err
	}
	if s.pos < len(s.data) {
		return ErrMoreThanOneValue
	}
	return nil
}

// Stream provides piecewise access to RLP-encoded data. Reads within a list
// opened by List are bounded by that list until ListEnd.
type Stream struct {
	data  []byte
	pos   int
	stack []int // exclusive end offsets of open lists
	err   error
}

// NewStream creates a stream over everything r yields. A read error is
// reported by the first call on the stream.
func NewStream(r io.Reader) *Stream {
	data, err := io.ReadAll(r)
	return &Stream{data: data, err: err}
}

// NewStreamBytes creates a stream over b without copying it.
func NewStreamBytes(b []byte) *Stream {
	return &Stream{data: b}
}

// limit returns the current read boundary.
func (s *Stream) limit() int {
	if len(s.stack) > 0 {
		return s.stack[len(s.stack)-1]
	}
	return len(s.data)
}

func (s *Stream) header() (kind Kind, tagSize, contentSize uint64, err error) {
	if s.err != nil {
		return 0, 0, 0, s.err
	}
	lim := s.limit()
	if s.pos >= lim {
		if len(s.stack) > 0 {
			return 0, 0, 0, ErrEOL
		}
		return 0, 0, 0, io.EOF
	}
	return readKind(s.data[s.pos:lim])
}

// Kind returns the type and content size of the next value without consuming it.
func (s *Stream) Kind() (Kind, uint64, error) {
	kind, _, size, err := s.header()
	return kind, size, err
}

// AtListEnd reports whether every item of the innermost open list has been read.
func (s *Stream) AtListEnd() bool {
	return len(s.stack) > 0 && s.pos >= s.limit()
}

// readItem consumes the next value and returns its kind and content. For
// single bytes the content is the byte itself.
func (s *Stream) readItem() (Kind, []byte, error) {
	kind, tagSize, size, err := s.header()
	if err != nil {
		return 0, nil, err
	}
	start := s.pos + int(tagSize)
	end := start + int(size)
	s.pos = end
	return kind, s.data[start:end], nil
}

// Raw consumes the next value and returns it with its header.
func (s *Stream) Raw() ([]byte, error) {
	_, tagSize, size, err := s.header()
	if err != nil {
		return nil, err
	}
	start := s.pos
	s.pos += int(tagSize + size)
	return s.data[start:s.pos], nil
}

// Bytes reads a string or single-byte value.
func (s *Stream) Bytes() ([]byte, error) {
	kind, payload, err := s.readItem()
	if err != nil {
		return nil, err
	}
	if kind == List {
		return nil, ErrExpectedString
	}
	return payload, nil
}

// List enters the next value, which must be a list, and returns its content size.
func (s *Stream) List() (uint64, error) {
	kind, tagSize, size, err := s.header()
	if err != nil {
		return 0, err
	}
	if kind != List {
		return 0, ErrExpectedList
	}
	s.pos += int(tagSize)
	s.stack = append(s.stack, s.pos+int(size))
	return size, nil
}

// ListEnd leaves the innermost list. All of its items must have been read.
func (s *Stream) ListEnd() error {
	if len(s.stack) == 0 {
		return ErrExpectedList
	}
	if s.pos != s.limit() {
		return ErrTooManyElements
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// uintBytes reads a canonical unsigned integer payload.
func (s *Stream) uintBytes() ([]byte, error) {
	kind, b, err := s.readItem()
	if err != nil {
		return nil, err
	}
	switch {
	case kind == List:
		return nil, ErrExpectedString
	case kind == Byte && b[0] == 0:
		return nil, ErrCanonInt
	case len(b) > 0 && b[0] == 0:
		return nil, ErrCanonInt
	}
	return b, nil
}

// Uint64 reads a canonical unsigned integer of at most 8 bytes.
func (s *Stream) Uint64() (uint64, error) {
	b, err := s.uintBytes()
	if err != nil {
		return 0, err
	}
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	var val uint64
	for _, x := range b {
		val = val<<8 | uint64(x)
	}
	return val, nil
}

// BigInt reads a canonical unsigned integer of any size.
func (s *Stream) BigInt() (*big.Int, error) {
	b, err := s.uintBytes()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// Uint256 reads a canonical unsigned integer of at most 32 bytes.
func (s *Stream) Uint256() (*uint256.Int, error) {
	b, err := s.uintBytes()
	if err != nil {
		return nil, err
	}
	if len(b) > 32 {
		return nil, ErrUint64Range
	}
	return new(uint256.Int).SetBytes(b), nil
}

// Decode decodes the next value into val, which must be a non-nil pointer.
func (s *Stream) Decode(val any) error {
	v := reflect.ValueOf(val)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrNoPointer
	}
	return s.decodeInto(v.Elem())
}

func (s *Stream) decodeInto(v reflect.Value) error {
	if v.Type() == rawValueType {
		raw, err := s.Raw()
		if err != nil {
			return err
		}
		v.SetBytes(bytes.Clone(raw))
		return nil
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(decoderType) {
		return v.Addr().Interface().(Decoder).DecodeRLP(s)
	}

	switch v.Type() {
	case bigIntType:
		bi, err := s.BigInt()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(*bi))
		return nil
	case uint256Type:
		u, err := s.Uint256()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(*u))
		return nil
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return s.decodeInto(v.Elem())

	case reflect.Interface:
		if v.NumMethod() != 0 {
			return errors.Wrapf(ErrUnsupportedType, "%v", v.Type())
		}
		tree, err := s.decodeAny()
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(tree))
		return nil

	case reflect.Bool:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		switch {
		case len(b) == 0:
			v.SetBool(false)
		case len(b) == 1 && b[0] == 0x01:
			v.SetBool(true)
		default:
			return ErrCanonInt
		}
		return nil

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		u, err := s.Uint64()
		if err != nil {
			return err
		}
		if v.OverflowUint(u) {
			return errors.Wrapf(ErrUint64Range, "%d into %v", u, v.Type())
		}
		v.SetUint(u)
		return nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		u, err := s.Uint64()
		if err != nil {
			return err
		}
		if u > 1<<63-1 || v.OverflowInt(int64(u)) {
			return errors.Wrapf(ErrUint64Range, "%d into %v", u, v.Type())
		}
		v.SetInt(int64(u))
		return nil

	case reflect.String:
		b, err := s.Bytes()
		if err != nil {
			return err
		}
		v.SetString(string(b))
		return nil

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := s.Bytes()
			if err != nil {
				return err
			}
			v.SetBytes(bytes.Clone(b))
			return nil
		}
		return s.decodeList(v)

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b, err := s.Bytes()
			if err != nil {
				return err
			}
			if len(b) != v.Len() {
				return errors.Wrapf(ErrWrongArrayLength, "got %d bytes, want %d", len(b), v.Len())
			}
			reflect.Copy(v, reflect.ValueOf(b))
			return nil
		}
		return s.decodeList(v)

	case reflect.Struct:
		return s.decodeStruct(v)

	default:
		return errors.Wrapf(ErrUnsupportedType, "%v", v.Type())
	}
}

// decodeAny decodes the next value into a []byte or a nested []any.
func (s *Stream) decodeAny() (any, error) {
	kind, _, err := s.Kind()
	if err != nil {
		return nil, err
	}
	if kind != List {
		b, err := s.Bytes()
		if err != nil {
			return nil, err
		}
		return bytes.Clone(b), nil
	}
	if _, err := s.List(); err != nil {
		return nil, err
	}
	items := []any{}
	for !s.AtListEnd() {
		item, err := s.decodeAny()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, s.ListEnd()
}

func (s *Stream) decodeList(v reflect.Value) error {
	if _, err := s.List(); err != nil {
		return err
	}
	isSlice := v.Kind() == reflect.Slice
	if isSlice {
		v.SetLen(0)
	}
	i := 0
	for !s.AtListEnd() {
		if isSlice {
			v.Set(reflect.Append(v, reflect.New(v.Type().Elem()).Elem()))
		} else if i >= v.Len() {
			return ErrTooManyElements
		}
		if err := s.decodeInto(v.Index(i)); err != nil {
			return err
		}
		i++
	}
	if !isSlice && i < v.Len() {
		return errors.Wrapf(ErrEOL, "got %d elements, want %d", i, v.Len())
	}
	return s.ListEnd()
}

func (s *Stream) decodeStruct(v reflect.Value) error {
	if _, err := s.List(); err != nil {
		return err
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("rlp") == "-" {
			continue
		}
		if err := s.decodeInto(v.Field(i)); err != nil {
			return errors.Wrapf(err, "field %s.%s", t.Name(), f.Name)
		}
	}
	return s.ListEnd()
}
