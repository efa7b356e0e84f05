package rlp

import (
	"bytes"
	"io"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Encoder is implemented by types that need custom encoding rules or want to
// encode private fields. EncodeRLP must write exactly one RLP value.
type Encoder interface {
	EncodeRLP(io.Writer) error
}

// RawValue is an already encoded RLP value. It is written verbatim when
// encoding and captures the undecoded item when decoding.
type RawValue []byte

var (
	encoderType  = reflect.TypeOf((*Encoder)(nil)).Elem()
	decoderType  = reflect.TypeOf((*Decoder)(nil)).Elem()
	bigIntType   = reflect.TypeOf(big.Int{})
	uint256Type  = reflect.TypeOf(uint256.Int{})
	rawValueType = reflect.TypeOf(RawValue{})
)

// Encode writes the RLP encoding of val to w.
func Encode(w io.Writer, val any) error {
	b, err := EncodeToBytes(val)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeToBytes returns the RLP encoding of val. Supported values are bool,
// signed and unsigned integers (negative ones fail with ErrNegativeInt),
// big.Int, uint256.Int, strings, byte slices and arrays, slices and arrays of
// supported values, structs with exported fields, RawValue, interfaces
// holding any of these and Encoder implementations. Nil pointers encode as
// the empty string, or the empty list for list-like element types.
func EncodeToBytes(val any) ([]byte, error) {
	return appendValue(nil, reflect.ValueOf(val))
}

func appendValue(dst []byte, v reflect.Value) ([]byte, error) {
	if !v.IsValid() {
		return append(dst, 0x80), nil
	}
	if v.Type() == rawValueType {
		return append(dst, v.Bytes()...), nil
	}
	if enc, ok := asEncoder(v); ok {
		var buf bytes.Buffer
		if err := enc.EncodeRLP(&buf); err != nil {
			return nil, err
		}
		return append(dst, buf.Bytes()...), nil
	}

	switch v.Type() {
	case bigIntType:
		return appendBigIntValue(dst, v)
	case uint256Type:
		u := v.Interface().(uint256.Int)
		return AppendUint256(dst, &u), nil
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return append(dst, 0x80), nil
		}
		return appendValue(dst, v.Elem())

	case reflect.Ptr:
		if v.IsNil() {
			return append(dst, nilValue(v.Type().Elem())), nil
		}
		return appendValue(dst, v.Elem())

	case reflect.Bool:
		if v.Bool() {
			return append(dst, 0x01), nil
		}
		return append(dst, 0x80), nil

	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return AppendUint64(dst, v.Uint()), nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		i := v.Int()
		if i < 0 {
			return nil, errors.Wrapf(ErrNegativeInt, "%d", i)
		}
		return AppendUint64(dst, uint64(i)), nil

	case reflect.String:
		return AppendBytes(dst, []byte(v.String())), nil

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return AppendBytes(dst, v.Bytes()), nil
		}
		return appendList(dst, v)

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return AppendBytes(dst, byteArrayBytes(v)), nil
		}
		return appendList(dst, v)

	case reflect.Struct:
		return appendStruct(dst, v)

	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%v", v.Type())
	}
}

func asEncoder(v reflect.Value) (Encoder, bool) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
	}
	if !v.CanInterface() {
		return nil, false
	}
	if v.Type().Implements(encoderType) {
		enc, ok := v.Interface().(Encoder)
		return enc, ok
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(encoderType) {
		return v.Addr().Interface().(Encoder), true
	}
	return nil, false
}

func appendBigIntValue(dst []byte, v reflect.Value) ([]byte, error) {
	var i *big.Int
	if v.CanAddr() {
		i = v.Addr().Interface().(*big.Int)
	} else {
		x := v.Interface().(big.Int)
		i = &x
	}
	if i.Sign() < 0 {
		return nil, errors.Wrapf(ErrNegativeInt, "%s", i)
	}
	return AppendBigInt(dst, i), nil
}

// nilValue is the encoding of a nil pointer to t.
func nilValue(t reflect.Type) byte {
	switch {
	case t == bigIntType || t == uint256Type:
		return 0x80
	case t.Kind() == reflect.Struct:
		return 0xc0
	case (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() != reflect.Uint8:
		return 0xc0
	default:
		return 0x80
	}
}

func byteArrayBytes(v reflect.Value) []byte {
	if v.CanAddr() {
		return v.Slice(0, v.Len()).Bytes()
	}
	b := make([]byte, v.Len())
	for i := range b {
		b[i] = byte(v.Index(i).Uint())
	}
	return b
}

func appendList(dst []byte, v reflect.Value) ([]byte, error) {
	var payload []byte
	for i := 0; i < v.Len(); i++ {
		var err error
		if payload, err = appendValue(payload, v.Index(i)); err != nil {
			return nil, err
		}
	}
	dst = AppendListHeader(dst, len(payload))
	return append(dst, payload...), nil
}

func appendStruct(dst []byte, v reflect.Value) ([]byte, error) {
	var payload []byte
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("rlp") == "-" {
			continue
		}
		var err error
		if payload, err = appendValue(payload, v.Field(i)); err != nil {
			return nil, errors.Wrapf(err, "field %s.%s", t.Name(), f.Name)
		}
	}
	dst = AppendListHeader(dst, len(payload))
	return append(dst, payload...), nil
}
