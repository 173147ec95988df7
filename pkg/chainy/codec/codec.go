// Package codec implements the binary argument codec shared by all systems and the JSON codec
// used for persisted component records.
//
// Argument buffers use a Borsh-compatible little-endian layout: fixed width integers, bools as a
// single 0/1 byte, strings as a u32 length prefix followed by UTF-8 bytes and enums as a u8
// discriminant. The layout is shared across systems; the schema is not. Each system declares
// its own argument record by implementing Marshaler and Unmarshaler.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Marshaler is implemented by argument records that can be written to a buffer.
type Marshaler interface {
	MarshalBorsh(w *Writer)
}

// Unmarshaler is implemented by pointers to argument records.
type Unmarshaler interface {
	UnmarshalBorsh(r *Reader) error
}

// Encode serializes an argument record.
func Encode(v Marshaler) []byte {
	var w Writer
	v.MarshalBorsh(&w)
	return w.Bytes()
}

// Decode deserializes bz into a fresh T. The whole buffer must be consumed.
func Decode[T any, PT interface {
	*T
	Unmarshaler
}](bz []byte) (T, error) {
	var v T
	r := NewReader(bz)
	if err := PT(&v).UnmarshalBorsh(r); err != nil {
		return v, err
	}
	if err := r.Finish(); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeJSON decodes a JSON encoded component record.
func DecodeJSON[T any](bz []byte) (T, error) {
	comp := new(T)
	err := json.Unmarshal(bz, comp)
	if err != nil {
		return *comp, eris.Wrap(err, "failed to unmarshal json")
	}
	return *comp, nil
}

// EncodeJSON encodes a component record as JSON.
func EncodeJSON(comp any) ([]byte, error) {
	bz, err := json.Marshal(comp)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal json")
	}
	return bz, nil
}
