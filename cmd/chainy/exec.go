package main

import (
	"encoding/hex"

	"github.com/argus-labs/chainy/pkg/chainy/host"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// newExecCmd invokes a system against a stored record.
func newExecCmd(withWorld worldRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <system> <key> <hex-args>",
		Short: "Invoke a system and commit the updated record",
		Args:  cobra.ExactArgs(3),
		RunE: withWorld(func(cmd *cobra.Command, args []string, rt *host.Runtime) error {
			buf, err := hex.DecodeString(args[2])
			if err != nil {
				return eris.Wrap(err, "arguments must be hex encoded")
			}
			receipt, err := rt.Invoke(cmd.Context(), args[0], args[1], buf)
			if err != nil {
				return err
			}
			return printJSON(cmd, receipt)
		}),
	}
}

// newShowCmd prints a stored record.
func newShowCmd(withWorld worldRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Print the record stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: withWorld(func(cmd *cobra.Command, args []string, rt *host.Runtime) error {
			rec, err := rt.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		}),
	}
}
