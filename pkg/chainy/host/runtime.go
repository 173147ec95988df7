// Package host is a local hosting collaborator for the systems in package system. It owns what
// the systems deliberately do not: addressing records by key, loading one record, running one
// system against it with exclusive access and committing the result atomically. It backs the
// chainy CLI and end-to-end tests; it is not a ledger.
package host

import (
	"context"
	"sort"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/argus-labs/chainy/pkg/chainy/codec"
	"github.com/argus-labs/chainy/pkg/chainy/component"
	"github.com/argus-labs/chainy/pkg/chainy/system"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

var (
	// ErrUnknownSystem is returned when invoking a system that was never registered.
	ErrUnknownSystem = eris.New("unknown system")

	// ErrComponentMismatch is returned when a system is invoked on a record of a component type
	// it does not declare.
	ErrComponentMismatch = eris.New("component type mismatch")
)

// Record is a stored component together with its component name.
type Record struct {
	Component string          `json:"component"`
	Data      json.RawMessage `json:"data"`
}

// Receipt describes an accepted invocation.
type Receipt struct {
	ID        string          `json:"id"`
	System    string          `json:"system"`
	Key       string          `json:"key"`
	Component string          `json:"component"`
	Data      json.RawMessage `json:"data"`
}

type handler struct {
	component string
	exec      func(data []byte, args []byte) ([]byte, error)
}

// Runtime routes invocations to registered systems.
type Runtime struct {
	store    Store
	handlers map[string]handler
	log      zerolog.Logger
	metrics  statsd.ClientInterface
}

type Option func(*Runtime)

func WithLogger(log zerolog.Logger) Option {
	return func(rt *Runtime) { rt.log = log }
}

func WithMetrics(client statsd.ClientInterface) Option {
	return func(rt *Runtime) { rt.metrics = client }
}

func NewRuntime(store Store, opts ...Option) *Runtime {
	rt := &Runtime{
		store:    store,
		handlers: make(map[string]handler),
		log:      zerolog.Nop(),
		metrics:  &statsd.NoOpClient{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Register makes sys invocable by its name.
func Register[C component.Component](rt *Runtime, sys system.System[C]) error {
	name := sys.Name()
	if name == "" {
		return eris.New("system name cannot be empty")
	}
	if _, exists := rt.handlers[name]; exists {
		return eris.Errorf("system %s is already registered", name)
	}

	var zero C
	rt.handlers[name] = handler{
		component: zero.Name(),
		exec: func(data []byte, args []byte) ([]byte, error) {
			c, err := codec.DecodeJSON[C](data)
			if err != nil {
				return nil, eris.Wrapf(err, "failed to decode %s record", zero.Name())
			}
			next, err := sys.Execute(c, args)
			if err != nil {
				return nil, err
			}
			return codec.EncodeJSON(next)
		},
	}
	rt.log.Debug().Str("system", name).Str("component", zero.Name()).Msg("registered system")
	return nil
}

// Systems returns the names of all registered systems in sorted order.
func (rt *Runtime) Systems() []string {
	names := make([]string, 0, len(rt.handlers))
	for name := range rt.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named system against the record stored under key. On success the updated record
// is committed and returned in the receipt; on failure nothing is written.
func (rt *Runtime) Invoke(ctx context.Context, name, key string, args []byte) (Receipt, error) {
	h, ok := rt.handlers[name]
	if !ok {
		return Receipt{}, eris.Wrapf(ErrUnknownSystem, "system %s", name)
	}

	receipt := Receipt{
		ID:        uuid.NewString(),
		System:    name,
		Key:       key,
		Component: h.component,
	}
	log := rt.log.With().
		Str("trace_id", receipt.ID).
		Str("system", name).
		Str("key", key).
		Logger()

	start := time.Now()
	err := rt.store.Update(ctx, key, func(current []byte) ([]byte, error) {
		rec, err := codec.DecodeJSON[Record](current)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to decode record %q", key)
		}
		if rec.Component != h.component {
			return nil, eris.Wrapf(ErrComponentMismatch, "system %s declares %s, record %q holds %s",
				name, h.component, key, rec.Component)
		}

		data, err := h.exec(rec.Data, args)
		if err != nil {
			return nil, err
		}
		receipt.Data = data
		return codec.EncodeJSON(Record{Component: h.component, Data: data})
	})
	rt.observe(name, start, err)

	if err != nil {
		kind := system.KindOf(err)
		log.Warn().Err(err).Str("error_kind", string(kind)).Msg("invocation rejected")
		return Receipt{}, eris.Wrapf(err, "invocation %s rejected", receipt.ID)
	}

	log.Debug().RawJSON("component", receipt.Data).Msg("invocation committed")
	return receipt, nil
}

func (rt *Runtime) observe(name string, start time.Time, err error) {
	tags := []string{"system:" + name}
	metric := "chainy.invocation.ok"
	if err != nil {
		metric = "chainy.invocation.rejected"
		tags = append(tags, "error_kind:"+string(system.KindOf(err)))
	}
	if merr := rt.metrics.Incr(metric, tags, 1); merr != nil {
		rt.log.Debug().Err(merr).Msg("failed to emit metric")
	}
	if merr := rt.metrics.Timing("chainy.invocation.duration", time.Since(start), tags, 1); merr != nil {
		rt.log.Debug().Err(merr).Msg("failed to emit metric")
	}
}

// Get returns the raw record stored under key.
func (rt *Runtime) Get(ctx context.Context, key string) (Record, error) {
	bz, err := rt.store.Get(ctx, key)
	if err != nil {
		return Record{}, err
	}
	return codec.DecodeJSON[Record](bz)
}

// Spawn stores c under key, replacing whatever was there. Records are normally created by the
// hosting ledger; Spawn exists to seed local worlds and fixtures.
func Spawn[C component.Component](ctx context.Context, rt *Runtime, key string, c C) error {
	data, err := codec.EncodeJSON(c)
	if err != nil {
		return err
	}
	bz, err := codec.EncodeJSON(Record{Component: c.Name(), Data: data})
	if err != nil {
		return err
	}
	if err := rt.store.Put(ctx, key, bz); err != nil {
		return err
	}
	rt.log.Debug().Str("key", key).Str("component", c.Name()).Msg("spawned record")
	return nil
}

// Fetch loads the record under key as a C.
func Fetch[C component.Component](ctx context.Context, rt *Runtime, key string) (C, error) {
	var zero C
	rec, err := rt.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if rec.Component != zero.Name() {
		return zero, eris.Wrapf(ErrComponentMismatch, "record %q holds %s, not %s", key, rec.Component, zero.Name())
	}
	return codec.DecodeJSON[C](rec.Data)
}
