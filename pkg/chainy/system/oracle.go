package system

import (
	"time"

	"github.com/rotisserie/eris"
)

// Oracle supplies the externally observed time value the movement step is derived from.
type Oracle interface {
	UnixTimestamp() (int64, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func() (int64, error)

func (f OracleFunc) UnixTimestamp() (int64, error) {
	return f()
}

// WallClock reads the local wall clock in unix seconds.
func WallClock() Oracle {
	return OracleFunc(func() (int64, error) {
		return time.Now().Unix(), nil
	})
}

// FixedOracle always reports ts.
func FixedOracle(ts int64) Oracle {
	return OracleFunc(func() (int64, error) {
		return ts, nil
	})
}

// UnavailableOracle always fails.
func UnavailableOracle() Oracle {
	return OracleFunc(func() (int64, error) {
		return 0, eris.New("no clock source")
	})
}
