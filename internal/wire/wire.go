// Package wire holds the protobuf wire-format helpers used to encode the
// records the core commits to. Field numbers follow the ibc-go proto files so
// that counterparties hashing the same records obtain identical bytes.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ibcerrors "github.com/multiversx/mx-ibc-go/modules/core/errors"
)

// Encoder appends fields in increasing field number order. Zero scalars are
// omitted, embedded messages are always written.
type Encoder struct {
	buf []byte
}

// String appends a string field unless it is empty.
func (e *Encoder) String(num protowire.Number, v string) *Encoder {
	if v == "" {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, v)
	return e
}

// Bytes appends a bytes field unless it is empty.
func (e *Encoder) Bytes(num protowire.Number, v []byte) *Encoder {
	if len(v) == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, v)
	return e
}

// Uint64 appends a varint field unless it is zero.
func (e *Encoder) Uint64(num protowire.Number, v uint64) *Encoder {
	if v == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
	return e
}

// Message appends an embedded message field, even when it encodes to nothing.
func (e *Encoder) Message(num protowire.Number, v []byte) *Encoder {
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, v)
	return e
}

// Strings appends one field per element, the repeated string encoding.
func (e *Encoder) Strings(num protowire.Number, vs []string) *Encoder {
	for _, v := range vs {
		e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
		e.buf = protowire.AppendString(e.buf, v)
	}
	return e
}

// Encoded returns the encoded buffer.
func (e *Encoder) Encoded() []byte {
	return e.buf
}

// Field is a single decoded field. Varint holds the value of varint fields,
// Bytes the payload of length-delimited fields.
type Field struct {
	Num    protowire.Number
	Type   protowire.Type
	Varint uint64
	Bytes  []byte
}

// Decode walks the fields of bz and calls fn for every varint and
// length-delimited field. Other wire types are skipped.
func Decode(bz []byte, fn func(Field) error) error {
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return parseError(n)
		}
		bz = bz[n:]

		field := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(bz)
			if n < 0 {
				return parseError(n)
			}
			field.Varint = v
			bz = bz[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(bz)
			if n < 0 {
				return parseError(n)
			}
			field.Bytes = v
			bz = bz[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, bz)
			if n < 0 {
				return parseError(n)
			}
			bz = bz[n:]
			continue
		}

		if err := fn(field); err != nil {
			return err
		}
	}
	return nil
}

func parseError(n int) error {
	return sdkerrors.Wrap(ibcerrors.ErrInvalidEncoding, protowire.ParseError(n).Error())
}
