package main

import (
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/argus-labs/chainy/pkg/chainy/host"
	"github.com/spf13/cobra"
)

type spawnFlags struct {
	x, y  int64
	owner string
	alive bool
}

func (f *spawnFlags) parseOwner() (component.Identity, error) {
	if f.owner == "" {
		return component.Identity{}, nil
	}
	return component.ParseIdentity(f.owner)
}

// newSpawnCmd seeds component records into the local world.
func newSpawnCmd(withWorld worldRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spawn",
		Short: "Store a fresh component record under a key",
	}

	var agentFlags spawnFlags
	agent := &cobra.Command{
		Use:   "agent <key>",
		Short: "Spawn an agent",
		Args:  cobra.ExactArgs(1),
		RunE: withWorld(func(cmd *cobra.Command, args []string, rt *host.Runtime) error {
			owner, err := agentFlags.parseOwner()
			if err != nil {
				return err
			}
			c := component.Agent{X: agentFlags.x, Y: agentFlags.y, Owner: owner, Alive: agentFlags.alive}
			if err := host.Spawn(cmd.Context(), rt, args[0], c); err != nil {
				return err
			}
			return printJSON(cmd, c)
		}),
	}
	agent.Flags().BoolVar(&agentFlags.alive, "alive", true, "initial alive flag")

	var tileFlags spawnFlags
	tile := &cobra.Command{
		Use:   "tile <key>",
		Short: "Spawn a tile with an empty grid",
		Args:  cobra.ExactArgs(1),
		RunE: withWorld(func(cmd *cobra.Command, args []string, rt *host.Runtime) error {
			owner, err := tileFlags.parseOwner()
			if err != nil {
				return err
			}
			c := component.Tile{X: tileFlags.x, Y: tileFlags.y, Owner: owner}
			if err := host.Spawn(cmd.Context(), rt, args[0], c); err != nil {
				return err
			}
			return printJSON(cmd, c)
		}),
	}

	for _, sub := range []struct {
		cmd   *cobra.Command
		flags *spawnFlags
	}{{agent, &agentFlags}, {tile, &tileFlags}} {
		sub.cmd.Flags().Int64Var(&sub.flags.x, "x", 0, "world x coordinate")
		sub.cmd.Flags().Int64Var(&sub.flags.y, "y", 0, "world y coordinate")
		sub.cmd.Flags().StringVar(&sub.flags.owner, "owner", "", "base58 owner identity")
		cmd.AddCommand(sub.cmd)
	}
	return cmd
}
