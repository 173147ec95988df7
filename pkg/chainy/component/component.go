// Package component defines the persisted component records of the game world. Components are
// pure data: they are created with default values by the host and only ever overwritten field by
// field by systems.
package component

// Component is the interface all component records implement.
type Component interface { //nolint:iface // We may add more methods in the future.
	// Name returns the component id under which records of this type are stored. It must be
	// stable across program executions.
	Name() string
}

var (
	_ Component = Agent{}
	_ Component = Tile{}
)
