package component

import "github.com/rotisserie/eris"

// Agent is a movable player on the world grid.
type Agent struct {
	X      int64    `json:"x"`
	Y      int64    `json:"y"`
	Facing Facing   `json:"facing"`
	Owner  Identity `json:"owner"`
	Alive  bool     `json:"alive"`
}

func (Agent) Name() string {
	return "player"
}

// Facing is the direction an agent looks towards. The zero value is FacingDown so that a freshly
// created agent always has a valid facing.
type Facing uint8

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

var facingNames = [...]string{ //nolint:gochecknoglobals // lookup table
	FacingDown:  "down",
	FacingUp:    "up",
	FacingLeft:  "left",
	FacingRight: "right",
}

// Valid reports whether f is one of the four facings.
func (f Facing) Valid() bool {
	return int(f) < len(facingNames)
}

func (f Facing) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return facingNames[f]
}

func (f Facing) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, eris.Errorf("invalid facing %d", uint8(f))
	}
	return []byte(facingNames[f]), nil
}

func (f *Facing) UnmarshalText(text []byte) error {
	for i, name := range facingNames {
		if name == string(text) {
			*f = Facing(i) //nolint:gosec // i < len(facingNames)
			return nil
		}
	}
	return eris.Errorf("unknown facing %q", text)
}
