package system

import (
	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/rotisserie/eris"
)

// IdentityArgs is the argument record of IdentitySystem.
type IdentityArgs struct {
	IdentityText string
	Alive        bool
}

func (a IdentityArgs) MarshalBorsh(w *codec.Writer) {
	w.String(a.IdentityText)
	w.Bool(a.Alive)
}

func (a *IdentityArgs) UnmarshalBorsh(r *codec.Reader) error {
	var err error
	if a.IdentityText, err = r.String("identity"); err != nil {
		return err
	}
	if a.Alive, err = r.Bool("alive"); err != nil {
		return err
	}
	return nil
}

// IdentitySystem rebinds an agent's owner and alive flag. It performs no authorization; whether
// the caller may rebind the agent is decided by the host.
type IdentitySystem struct{}

func (IdentitySystem) Name() string {
	return "update-player"
}

func (IdentitySystem) Execute(agent component.Agent, args []byte) (component.Agent, error) {
	in, err := codec.Decode[IdentityArgs](args)
	if err != nil {
		return agent, eris.Wrap(err, "failed to decode identity args")
	}

	owner, err := component.ParseIdentity(in.IdentityText)
	if err != nil {
		return agent, err
	}

	agent.Owner = owner
	agent.Alive = in.Alive
	return agent, nil
}
