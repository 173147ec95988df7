package main

import (
	"encoding/hex"
	"fmt"

	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/argus-labs/chainy/pkg/chainy/system"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// newArgsCmd prints hex encoded argument buffers for each system.
func newArgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "args",
		Short: "Encode a system argument buffer as hex",
	}
	cmd.AddCommand(newMovementArgsCmd(), newIdentityArgsCmd(), newTileArgsCmd())
	return cmd
}

func printArgs(cmd *cobra.Command, v codec.Marshaler) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(codec.Encode(v)))
	return eris.Wrap(err, "failed to write output")
}

func newMovementArgsCmd() *cobra.Command {
	var direction string
	cmd := &cobra.Command{
		Use:   "movement",
		Short: "Arguments for the movement system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := system.ParseDirection(direction)
			if err != nil {
				return err
			}
			return printArgs(cmd, system.MovementArgs{Direction: d})
		},
	}
	cmd.Flags().StringVar(&direction, "direction", "", "left, right, up or down")
	_ = cmd.MarkFlagRequired("direction")
	return cmd
}

func newIdentityArgsCmd() *cobra.Command {
	var (
		identity string
		alive    bool
	)
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Arguments for the update-player system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The text is passed through unvalidated so malformed identities can be exercised.
			return printArgs(cmd, system.IdentityArgs{IdentityText: identity, Alive: alive})
		},
	}
	cmd.Flags().StringVar(&identity, "identity", "", "base58 identity of the new owner")
	cmd.Flags().BoolVar(&alive, "alive", false, "alive flag")
	_ = cmd.MarkFlagRequired("identity")
	return cmd
}

func newTileArgsCmd() *cobra.Command {
	var (
		x, y int64
		cell string
	)
	cmd := &cobra.Command{
		Use:   "tile",
		Short: "Arguments for the update-tile system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := component.ParseCell(cell)
			if err != nil {
				return err
			}
			return printArgs(cmd, system.TileArgs{X: x, Y: y, Cell: c})
		},
	}
	cmd.Flags().Int64Var(&x, "x", 0, "grid row")
	cmd.Flags().Int64Var(&y, "y", 0, "grid column")
	cmd.Flags().StringVar(&cell, "cell", "empty", "empty, tree, trap or egg")
	return cmd
}
