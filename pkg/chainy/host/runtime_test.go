package host_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/argus-labs/chainy/pkg/chainy/host"
	"github.com/argus-labs/chainy/pkg/chainy/system"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMetrics counts Incr calls by metric name and tags.
type recordingMetrics struct {
	*statsd.NoOpClient
	mu     sync.Mutex
	counts map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{NoOpClient: &statsd.NoOpClient{}, counts: make(map[string]int)}
}

func (m *recordingMetrics) Incr(name string, tags []string, _ float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
	for _, tag := range tags {
		m.counts[name+"|"+tag]++
	}
	return nil
}

func (m *recordingMetrics) count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func fixedStepConfig() host.Config {
	cfg := host.DefaultConfig()
	cfg.Storage = host.StorageMemory
	cfg.StepPolicy = host.StepPolicyFixed
	cfg.FixedStep = 1
	return cfg
}

func newWorld(t *testing.T, opts ...host.Option) *host.Runtime {
	t.Helper()
	rt, err := host.NewWorld(fixedStepConfig(), host.NewMemoryStore(), opts...)
	require.NoError(t, err)
	return rt
}

func TestRuntime_Systems(t *testing.T) {
	t.Parallel()

	rt := newWorld(t)
	assert.Equal(t, []string{"movement", "update-player", "update-tile"}, rt.Systems())

	err := host.Register[component.Tile](rt, system.TileMutationSystem{})
	require.Error(t, err, "duplicate registration must fail")
}

func TestRuntime_InvokeCommits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	metrics := newRecordingMetrics()
	rt := newWorld(t, host.WithMetrics(metrics))
	require.NoError(t, host.Spawn(ctx, rt, "agent", component.Agent{}))

	receipt, err := rt.Invoke(ctx, "movement", "agent", codec.Encode(system.MovementArgs{Direction: system.DirectionRight}))
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, "movement", receipt.System)
	assert.Equal(t, "player", receipt.Component)

	fromReceipt, err := codec.DecodeJSON[component.Agent](receipt.Data)
	require.NoError(t, err)

	stored, err := host.Fetch[component.Agent](ctx, rt, "agent")
	require.NoError(t, err)
	assert.Equal(t, stored, fromReceipt)
	assert.Equal(t, component.Agent{X: 1, Y: 0, Facing: component.FacingRight}, stored)

	assert.Equal(t, 1, metrics.count("chainy.invocation.ok|system:movement"))
}

func TestRuntime_RejectedInvocationWritesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	owner, err := component.ParseIdentity("3XbWhap1xiE9zmUu2nqtv3NUVX1RVeXnvaMvUVaw3Lg5")
	require.NoError(t, err)
	agent := component.Agent{X: 3, Y: 3, Facing: component.FacingUp, Owner: owner, Alive: true}

	var tile component.Tile
	tile.Grid[2][2] = component.CellTrap

	tests := []struct {
		name     string
		system   string
		key      string
		args     []byte
		wantErr  error
		wantKind system.ErrorKind
	}{
		{
			name:     "malformed movement args",
			system:   "movement",
			key:      "agent",
			args:     []byte{9},
			wantErr:  codec.ErrDecode,
			wantKind: system.KindDecode,
		},
		{
			name:     "malformed identity",
			system:   "update-player",
			key:      "agent",
			args:     codec.Encode(system.IdentityArgs{IdentityText: "not-a-valid-identity", Alive: false}),
			wantErr:  component.ErrIdentityParse,
			wantKind: system.KindIdentityParse,
		},
		{
			name:     "tile index out of range",
			system:   "update-tile",
			key:      "tile",
			args:     codec.Encode(system.TileArgs{X: 10, Y: 0, Cell: component.CellTree}),
			wantErr:  system.ErrIndexOutOfRange,
			wantKind: system.KindIndexOutOfRange,
		},
		{
			name:     "system on the wrong component",
			system:   "update-tile",
			key:      "agent",
			args:     codec.Encode(system.TileArgs{X: 1, Y: 1, Cell: component.CellTree}),
			wantErr:  host.ErrComponentMismatch,
			wantKind: system.KindUnknown,
		},
		{
			name:     "missing record",
			system:   "movement",
			key:      "ghost",
			args:     codec.Encode(system.MovementArgs{Direction: system.DirectionUp}),
			wantErr:  host.ErrRecordNotFound,
			wantKind: system.KindUnknown,
		},
		{
			name:     "unknown system",
			system:   "teleport",
			key:      "agent",
			wantErr:  host.ErrUnknownSystem,
			wantKind: system.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			metrics := newRecordingMetrics()
			rt := newWorld(t, host.WithMetrics(metrics))
			require.NoError(t, host.Spawn(ctx, rt, "agent", agent))
			require.NoError(t, host.Spawn(ctx, rt, "tile", tile))

			_, err := rt.Invoke(ctx, tt.system, tt.key, tt.args)
			require.Error(t, err)
			assert.True(t, eris.Is(err, tt.wantErr), "unexpected error: %v", err)
			assert.Equal(t, tt.wantKind, system.KindOf(err))

			gotAgent, err := host.Fetch[component.Agent](ctx, rt, "agent")
			require.NoError(t, err)
			assert.Equal(t, agent, gotAgent)

			gotTile, err := host.Fetch[component.Tile](ctx, rt, "tile")
			require.NoError(t, err)
			assert.Equal(t, tile, gotTile)

			if tt.system != "teleport" {
				assert.Equal(t, 1, metrics.count("chainy.invocation.rejected|error_kind:"+string(tt.wantKind)))
			}
		})
	}
}

func TestRuntime_LogsTraceID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var buf bytes.Buffer
	rt := newWorld(t, host.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, host.Spawn(ctx, rt, "tile", component.Tile{}))

	receipt, err := rt.Invoke(ctx, "update-tile", "tile", codec.Encode(system.TileArgs{X: 0, Y: 9, Cell: component.CellTree}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"trace_id":"`+receipt.ID+`"`)
	assert.Contains(t, buf.String(), "invocation committed")

	_, err = rt.Invoke(ctx, "update-tile", "tile", codec.Encode(system.TileArgs{X: 0, Y: 10, Cell: component.CellTree}))
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"error_kind":"index_out_of_range"`)
}

// Mirrors the original client walkthrough: a world with one entity gets a tile component attached
// and a system mutates it.
func TestRuntime_TileWalkthrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, _ := newRedisStore(t)
	rt, err := host.NewWorld(fixedStepConfig(), store)
	require.NoError(t, err)

	const key = "world-0/entity-0/tile"
	require.NoError(t, host.Spawn(ctx, rt, key, component.Tile{}))

	_, err = rt.Invoke(ctx, "update-tile", key, codec.Encode(system.TileArgs{X: 3, Y: 4, Cell: component.CellEgg}))
	require.NoError(t, err)

	got, err := host.Fetch[component.Tile](ctx, rt, key)
	require.NoError(t, err)

	var want component.Tile
	want.Grid[3][4] = component.CellEgg
	assert.Equal(t, want, got)

	rec, err := rt.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "tile", rec.Component)

	_, err = host.Fetch[component.Agent](ctx, rt, key)
	require.Error(t, err)
	assert.True(t, eris.Is(err, host.ErrComponentMismatch))
}

func TestRuntime_ConcurrentInvocationsAreSerialized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rt := newWorld(t)
	require.NoError(t, host.Spawn(ctx, rt, "agent", component.Agent{}))

	const n = 64
	args := codec.Encode(system.MovementArgs{Direction: system.DirectionUp})

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rt.Invoke(ctx, "movement", "agent", args)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := host.Fetch[component.Agent](ctx, rt, "agent")
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.Y)
}
