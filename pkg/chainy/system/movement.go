package system

import (
	"github.com/argus-labs/chainy/pkg/assert"
	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/rotisserie/eris"
)

// Direction is the movement argument. Discriminants follow the wire order Left, Right, Up, Down.
type Direction uint8

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionUp
	DirectionDown

	directionCount = 4
)

var directionNames = [directionCount]string{ //nolint:gochecknoglobals // lookup table
	DirectionLeft:  "left",
	DirectionRight: "right",
	DirectionUp:    "up",
	DirectionDown:  "down",
}

// Directions lists every direction in wire order.
func Directions() []Direction {
	return []Direction{DirectionLeft, DirectionRight, DirectionUp, DirectionDown}
}

// ParseDirection returns the direction with the given lowercase name.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil //nolint:gosec // i < directionCount
		}
	}
	return 0, eris.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	if d >= directionCount {
		return "unknown"
	}
	return directionNames[d]
}

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionLeft:
		return DirectionRight
	case DirectionRight:
		return DirectionLeft
	case DirectionUp:
		return DirectionDown
	case DirectionDown:
		return DirectionUp
	}
	assert.That(false, "invalid direction %d", uint8(d))
	return d
}

// Facing returns the facing an agent takes after moving in d.
func (d Direction) Facing() component.Facing {
	switch d {
	case DirectionLeft:
		return component.FacingLeft
	case DirectionRight:
		return component.FacingRight
	case DirectionUp:
		return component.FacingUp
	case DirectionDown:
		return component.FacingDown
	}
	assert.That(false, "invalid direction %d", uint8(d))
	return component.FacingDown
}

// delta returns the position change for a move of step cells. Up is +y.
func (d Direction) delta(step int64) (int64, int64) {
	switch d {
	case DirectionLeft:
		return -step, 0
	case DirectionRight:
		return step, 0
	case DirectionUp:
		return 0, step
	case DirectionDown:
		return 0, -step
	}
	assert.That(false, "invalid direction %d", uint8(d))
	return 0, 0
}

// MovementArgs is the argument record of MovementSystem.
type MovementArgs struct {
	Direction Direction
}

func (a MovementArgs) MarshalBorsh(w *codec.Writer) {
	w.U8(uint8(a.Direction))
}

func (a *MovementArgs) UnmarshalBorsh(r *codec.Reader) error {
	d, err := r.Enum("direction", directionCount)
	if err != nil {
		return err
	}
	a.Direction = Direction(d)
	return nil
}

// StepPolicy selects how far an agent moves per invocation.
type StepPolicy uint8

const (
	// StepOracle moves 1 + (|oracle value| mod 6) cells.
	StepOracle StepPolicy = iota
	// StepFixed moves a constant number of cells.
	StepFixed
)

const oracleStepSpan = 6

// MovementSystem moves an agent along one axis and turns it to face the direction of travel.
type MovementSystem struct {
	policy      StepPolicy
	fixedStep   int64
	oracle      Oracle
	trackFacing bool
}

type MovementOption func(*MovementSystem)

// WithFixedStep moves agents a constant step cells per invocation.
func WithFixedStep(step int64) MovementOption {
	assert.That(step > 0, "fixed step must be positive, got %d", step)
	return func(s *MovementSystem) {
		s.policy = StepFixed
		s.fixedStep = step
	}
}

// WithOracle derives the step from o. This is the default policy, backed by the wall clock.
func WithOracle(o Oracle) MovementOption {
	return func(s *MovementSystem) {
		s.policy = StepOracle
		s.oracle = o
	}
}

// WithoutFacing leaves the agent's facing untouched.
func WithoutFacing() MovementOption {
	return func(s *MovementSystem) { s.trackFacing = false }
}

func NewMovementSystem(opts ...MovementOption) MovementSystem {
	s := MovementSystem{
		policy:      StepOracle,
		fixedStep:   1,
		oracle:      WallClock(),
		trackFacing: true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (MovementSystem) Name() string {
	return "movement"
}

func (s MovementSystem) Execute(agent component.Agent, args []byte) (component.Agent, error) {
	in, err := codec.Decode[MovementArgs](args)
	if err != nil {
		return agent, eris.Wrap(err, "failed to decode movement args")
	}

	step, err := s.step()
	if err != nil {
		return agent, err
	}

	dx, dy := in.Direction.delta(step)
	agent.X += dx
	agent.Y += dy
	if s.trackFacing {
		agent.Facing = in.Direction.Facing()
	}
	return agent, nil
}

func (s MovementSystem) step() (int64, error) {
	if s.policy == StepFixed {
		return s.fixedStep, nil
	}
	if s.oracle == nil {
		return 0, eris.Wrap(ErrOracleUnavailable, "no oracle configured")
	}
	ts, err := s.oracle.UnixTimestamp()
	if err != nil {
		return 0, eris.Wrapf(ErrOracleUnavailable, "failed to read oracle: %v", err)
	}
	return OracleStep(ts), nil
}

// OracleStep returns the step derived from an oracle value, always in [1, 6].
func OracleStep(ts int64) int64 {
	mag := uint64(ts)
	if ts < 0 {
		mag = -mag
	}
	return 1 + int64(mag%oracleStepSpan) //nolint:gosec // < oracleStepSpan
}
