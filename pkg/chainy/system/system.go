// Package system implements the transitions applied to component records.
//
// A system receives one component record and one opaque argument buffer. It decodes the buffer
// into its own argument record and returns the updated component, or an error and the component
// exactly as it was received. Systems take components by value, never perform I/O and never
// touch more than one record. Persisting the returned record is the host's job.
package system

import "github.com/argus-labs/chainy/pkg/chainy/component"

// System is a transition over a single component record of type C.
type System[C component.Component] interface {
	// Name returns the name the host routes invocations by.
	Name() string
	// Execute decodes args and applies the transition to c.
	Execute(c C, args []byte) (C, error)
}

var (
	_ System[component.Agent] = MovementSystem{}
	_ System[component.Agent] = IdentitySystem{}
	_ System[component.Tile]  = TileMutationSystem{}
)
