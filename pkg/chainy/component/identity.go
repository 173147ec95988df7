package component

import (
	"github.com/mr-tron/base58"
	"github.com/rotisserie/eris"
)

const (
	// IdentitySize is the number of bytes in an Identity.
	IdentitySize = 32

	// maxIdentityTextLen is the longest base58 string that can encode IdentitySize bytes.
	maxIdentityTextLen = 44
)

// ErrIdentityParse is returned when a textual identity is not a well-formed base58 encoding of
// exactly IdentitySize bytes. The wrapped message carries the parser's reason.
var ErrIdentityParse = eris.New("malformed identity")

// Identity is an opaque fixed-size value naming an owning principal (the hosting ledger's public
// key). Its text form is base58.
type Identity [IdentitySize]byte

// ParseIdentity parses the base58 text form of an identity.
func ParseIdentity(s string) (Identity, error) {
	var id Identity

	if len(s) > maxIdentityTextLen {
		return id, eris.Wrapf(ErrIdentityParse, "%q: text is %d characters, at most %d allowed",
			s, len(s), maxIdentityTextLen)
	}

	bz, err := base58.Decode(s)
	if err != nil {
		return id, eris.Wrapf(ErrIdentityParse, "%q: %v", s, err)
	}
	if len(bz) != IdentitySize {
		return id, eris.Wrapf(ErrIdentityParse, "%q: decoded to %d bytes, want %d", s, len(bz), IdentitySize)
	}

	copy(id[:], bz)
	return id, nil
}

func (id Identity) String() string {
	return base58.Encode(id[:])
}

func (id Identity) IsZero() bool {
	return id == Identity{}
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
