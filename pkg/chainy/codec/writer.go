package codec

import "encoding/binary"

// Writer is the encoding counterpart of Reader.
type Writer struct {
	buf []byte
}

func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) U32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) I64(v int64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v)) //nolint:gosec // two's complement reinterpretation
}

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

func (w *Writer) String(v string) {
	w.U32(uint32(len(v))) //nolint:gosec // argument strings are far below 4GiB
	w.buf = append(w.buf, v...)
}

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}
