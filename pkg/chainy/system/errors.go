package system

import (
	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/rotisserie/eris"
)

var (
	// ErrIndexOutOfRange is returned when a grid coordinate falls outside [0, GridSize).
	ErrIndexOutOfRange = eris.New("grid index out of range")

	// ErrOracleUnavailable is returned when the movement step depends on the time oracle and the
	// oracle cannot be read.
	ErrOracleUnavailable = eris.New("time oracle unavailable")
)

// ErrorKind tags the reason an invocation was rejected.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindDecode            ErrorKind = "decode_failure"
	KindIdentityParse     ErrorKind = "identity_parse_failure"
	KindIndexOutOfRange   ErrorKind = "index_out_of_range"
	KindOracleUnavailable ErrorKind = "oracle_unavailable"
	KindUnknown           ErrorKind = "unknown"
)

// KindOf maps an error returned by a system to its kind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case eris.Is(err, codec.ErrDecode):
		return KindDecode
	case eris.Is(err, component.ErrIdentityParse):
		return KindIdentityParse
	case eris.Is(err, ErrIndexOutOfRange):
		return KindIndexOutOfRange
	case eris.Is(err, ErrOracleUnavailable):
		return KindOracleUnavailable
	default:
		return KindUnknown
	}
}
