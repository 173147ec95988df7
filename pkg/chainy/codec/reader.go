package codec

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// Reader consumes a little-endian argument buffer field by field. Every read either returns the
// decoded value or an error wrapping ErrDecode; a failed read leaves the offset untouched.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of bz.
func NewReader(bz []byte) *Reader {
	return &Reader{buf: bz}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(n int, field string) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, eris.Wrapf(ErrDecode, "truncated %s: need %d bytes at offset %d, have %d",
			field, n, r.off, r.Remaining())
	}
	bz := r.buf[r.off : r.off+n]
	r.off += n
	return bz, nil
}

func (r *Reader) U8(field string) (uint8, error) {
	bz, err := r.take(1, field)
	if err != nil {
		return 0, err
	}
	return bz[0], nil
}

func (r *Reader) U32(field string) (uint32, error) {
	bz, err := r.take(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bz), nil
}

func (r *Reader) I64(field string) (int64, error) {
	bz, err := r.take(8, field)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(bz)), nil //nolint:gosec // two's complement reinterpretation
}

// Bool reads a single byte that must be exactly 0 or 1.
func (r *Reader) Bool(field string) (bool, error) {
	start := r.off
	b, err := r.U8(field)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		r.off = start
		return false, eris.Wrapf(ErrDecode, "invalid bool byte 0x%02x for %s", b, field)
	}
}

// String reads a u32 length prefix followed by that many UTF-8 bytes.
func (r *Reader) String(field string) (string, error) {
	start := r.off
	n, err := r.U32(field + " length")
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(r.Remaining()) {
		r.off = start
		return "", eris.Wrapf(ErrDecode, "truncated %s: length prefix %d exceeds remaining %d bytes",
			field, n, r.Remaining())
	}
	bz, _ := r.take(int(n), field)
	if !utf8.Valid(bz) {
		r.off = start
		return "", eris.Wrapf(ErrDecode, "%s is not valid utf-8", field)
	}
	return string(bz), nil
}

// Enum reads a u8 discriminant and rejects anything outside [0, count).
func (r *Reader) Enum(field string, count uint8) (uint8, error) {
	start := r.off
	d, err := r.U8(field)
	if err != nil {
		return 0, err
	}
	if d >= count {
		r.off = start
		return 0, eris.Wrapf(ErrDecode, "unknown %s discriminant %d", field, d)
	}
	return d, nil
}

// Finish reports an error if any bytes were left unread.
func (r *Reader) Finish() error {
	if n := r.Remaining(); n != 0 {
		return eris.Wrapf(ErrDecode, "%d trailing bytes after record", n)
	}
	return nil
}
