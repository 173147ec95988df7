package host_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/argus-labs/chainy/pkg/chainy/host"
	"github.com/argus-labs/chainy/pkg/chainy/system"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := host.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, host.DefaultConfig(), cfg)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("CHAINY_STORAGE", "MEMORY")
	t.Setenv("CHAINY_STEP_POLICY", "fixed")
	t.Setenv("CHAINY_FIXED_STEP", "3")
	t.Setenv("CHAINY_TRACK_FACING", "false")

	cfg, err := host.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, host.StorageMemory, cfg.Storage)
	assert.Equal(t, host.StepPolicyFixed, cfg.StepPolicy)
	assert.Equal(t, int64(3), cfg.FixedStep)
	assert.False(t, cfg.TrackFacing)

	rt, err := host.NewWorld(cfg, host.NewMemoryStore())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, host.Spawn(ctx, rt, "a", component.Agent{}))
	_, err = rt.Invoke(ctx, "movement", "a", codec.Encode(system.MovementArgs{Direction: system.DirectionLeft}))
	require.NoError(t, err)

	got, err := host.Fetch[component.Agent](ctx, rt, "a")
	require.NoError(t, err)
	assert.Equal(t, component.Agent{X: -3, Facing: component.FacingDown}, got)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chainy.env")
	require.NoError(t, os.WriteFile(path, []byte("CHAINY_NAMESPACE=arena\nCHAINY_STEP_POLICY=fixed\n"), 0o600))
	t.Setenv("CHAINY_STEP_POLICY", "oracle")

	cfg, err := host.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "arena", cfg.Namespace)
	assert.Equal(t, host.StepPolicyOracle, cfg.StepPolicy, "environment overrides the file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown storage", env: map[string]string{"CHAINY_STORAGE": "etcd"}},
		{name: "unknown step policy", env: map[string]string{"CHAINY_STEP_POLICY": "random"}},
		{name: "zero fixed step", env: map[string]string{"CHAINY_STEP_POLICY": "fixed", "CHAINY_FIXED_STEP": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := host.LoadConfig("")
			require.Error(t, err)
		})
	}
}

func TestConfig_NewStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log := zerolog.New(zerolog.NewTestWriter(t))

	cfg := host.DefaultConfig()
	cfg.Storage = host.StorageMemory
	store, err := cfg.NewStore(ctx, log)
	require.NoError(t, err)
	assert.IsType(t, &host.MemoryStore{}, store)

	mr := miniredis.RunT(t)
	cfg.Storage = host.StorageRedis
	cfg.RedisAddress = mr.Addr()
	store, err = cfg.NewStore(ctx, log)
	require.NoError(t, err)
	assert.IsType(t, &host.RedisStore{}, store)
	require.NoError(t, store.Close())

	mr.Close()
	_, err = cfg.NewStore(ctx, log)
	require.Error(t, err)
}
