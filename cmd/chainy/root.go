package main

import (
	"context"
	"fmt"

	"github.com/argus-labs/chainy/pkg/chainy/host"
	"github.com/argus-labs/chainy/pkg/telemetry"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

const serviceName = "chainy"

// newRootCmd creates the chainy command tree.
func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "chainy",
		Short:         "Drive the chainy game systems against a local world",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "read configuration from this env file before the environment")

	var withWorld worldRunner = func(fn func(cmd *cobra.Command, args []string, rt *host.Runtime) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return runWithWorld(cmd, envFile, func(rt *host.Runtime) error {
				return fn(cmd, args, rt)
			})
		}
	}

	root.AddCommand(
		newArgsCmd(),
		newSpawnCmd(withWorld),
		newExecCmd(withWorld),
		newShowCmd(withWorld),
	)
	return root
}

type worldRunner func(fn func(cmd *cobra.Command, args []string, rt *host.Runtime) error) func(*cobra.Command, []string) error

func runWithWorld(cmd *cobra.Command, envFile string, fn func(rt *host.Runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	telCfg, err := telemetry.LoadConfig(envFile)
	if err != nil {
		return err
	}
	tel, err := telemetry.New(serviceName, telCfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := tel.Shutdown(); err != nil {
			tel.Logger.Warn().Err(err).Msg("failed to shut down telemetry")
		}
	}()

	cfg, err := host.LoadConfig(envFile)
	if err != nil {
		return err
	}
	store, err := cfg.NewStore(ctx, tel.GetLogger("store"))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			tel.Logger.Warn().Err(err).Msg("failed to close store")
		}
	}()

	rt, err := host.NewWorld(cfg, store, host.WithLogger(tel.GetLogger("host")), host.WithMetrics(tel.Metrics))
	if err != nil {
		return eris.Wrap(err, "failed to build world")
	}
	return fn(rt)
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "failed to marshal output")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return eris.Wrap(err, "failed to write output")
}
