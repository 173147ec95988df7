package codec

import "github.com/rotisserie/eris"

var (
	// ErrDecode is returned when an argument buffer cannot be decoded into its typed record. This
	// covers truncated buffers, unknown enum discriminants, invalid bool bytes, invalid UTF-8
	// strings and trailing bytes after the record.
	ErrDecode = eris.New("failed to decode arguments")
)
