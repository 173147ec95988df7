package host

import (
	"context"
	"strings"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/argus-labs/chainy/pkg/chainy/system"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	StepPolicyOracle = "oracle"
	StepPolicyFixed  = "fixed"
)

// Config holds the host configuration. Values are read from the environment, optionally
// preceded by an env file.
type Config struct {
	// Storage backend, "memory" or "redis".
	Storage string `config:"CHAINY_STORAGE"`

	RedisAddress  string `config:"CHAINY_REDIS_ADDRESS"`
	RedisPassword string `config:"CHAINY_REDIS_PASSWORD"`

	// Namespace prefixes every redis key so several worlds can share one server.
	Namespace string `config:"CHAINY_NAMESPACE"`

	// StepPolicy is "oracle" (wall clock derived step) or "fixed".
	StepPolicy string `config:"CHAINY_STEP_POLICY"`
	FixedStep  int64  `config:"CHAINY_FIXED_STEP"`

	// TrackFacing turns agents towards their direction of travel.
	TrackFacing bool `config:"CHAINY_TRACK_FACING"`
}

func DefaultConfig() Config {
	return Config{
		Storage:      StorageRedis,
		RedisAddress: "localhost:6379",
		Namespace:    "world",
		StepPolicy:   StepPolicyOracle,
		FixedStep:    1,
		TrackFacing:  true,
	}
}

// LoadConfig loads the configuration from envFile (when not empty) and then the environment,
// on top of DefaultConfig.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()

	builder := jlconfig.FromEnv()
	if envFile != "" {
		builder = jlconfig.From(envFile).FromEnv()
	}
	if err := builder.To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse host config")
	}

	cfg.Storage = strings.ToLower(cfg.Storage)
	cfg.StepPolicy = strings.ToLower(cfg.StepPolicy)

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate host config")
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Storage {
	case StorageMemory:
	case StorageRedis:
		if cfg.RedisAddress == "" {
			return eris.New("redis address cannot be empty")
		}
		if cfg.Namespace == "" {
			return eris.New("namespace cannot be empty")
		}
	default:
		return eris.Errorf("invalid storage %q (must be 'memory' or 'redis')", cfg.Storage)
	}

	switch cfg.StepPolicy {
	case StepPolicyOracle:
	case StepPolicyFixed:
		if cfg.FixedStep < 1 {
			return eris.Errorf("fixed step must be positive, got %d", cfg.FixedStep)
		}
	default:
		return eris.Errorf("invalid step policy %q (must be 'oracle' or 'fixed')", cfg.StepPolicy)
	}
	return nil
}

// MovementOptions translates the step and facing settings into MovementSystem options.
func (cfg *Config) MovementOptions() []system.MovementOption {
	var opts []system.MovementOption
	if cfg.StepPolicy == StepPolicyFixed {
		opts = append(opts, system.WithFixedStep(cfg.FixedStep))
	} else {
		opts = append(opts, system.WithOracle(system.WallClock()))
	}
	if !cfg.TrackFacing {
		opts = append(opts, system.WithoutFacing())
	}
	return opts
}

// NewStore opens the configured storage backend.
func (cfg *Config) NewStore(ctx context.Context, log zerolog.Logger) (Store, error) {
	if cfg.Storage == StorageMemory {
		return NewMemoryStore(), nil
	}

	store := NewRedisStore(RedisOptions{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	}, cfg.Namespace, log)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// NewWorld builds a runtime over store with all systems registered.
func NewWorld(cfg Config, store Store, opts ...Option) (*Runtime, error) {
	rt := NewRuntime(store, opts...)
	if err := Register[component.Agent](rt, system.NewMovementSystem(cfg.MovementOptions()...)); err != nil {
		return nil, err
	}
	if err := Register[component.Agent](rt, system.IdentitySystem{}); err != nil {
		return nil, err
	}
	if err := Register[component.Tile](rt, system.TileMutationSystem{}); err != nil {
		return nil, err
	}
	return rt, nil
}
