// Package commands exposes the ledger operations as named commands with
// JSON payloads, the way the user interface calls them.
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/budgetbook/backend/pkg/ledger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Handler runs one command with its raw JSON payload.
type Handler func(ctx context.Context, s *ledger.Store, payload json.RawMessage) (any, error)

// Options configure a Registry.
type Options struct {
	// SeedExamples makes init_database create example budgets in an
	// empty database.
	SeedExamples bool
}

// Registry dispatches commands by name to the store.
type Registry struct {
	store    *ledger.Store
	options  Options
	handlers map[string]Handler

	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New returns a Registry with all commands registered.
func New(store *ledger.Store, options Options) *Registry {
	r := &Registry{
		store:    store,
		options:  options,
		handlers: map[string]Handler{},
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commands_total",
				Help: "How many commands were invoked, partitioned by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "command_duration_seconds",
				Help: "The command latencies in seconds.",
			},
			[]string{"command"},
		),
	}

	r.register("init_database", r.initDatabase)
	registerBudgetCommands(r)
	registerCategoryCommands(r)
	registerEntryCommands(r)
	registerCatalogCommands(r)
	registerTemplateCommands(r)

	return r
}

func (r *Registry) register(name string, h Handler) {
	if _, ok := r.handlers[name]; ok {
		panic(fmt.Sprintf("command %s registered twice", name))
	}
	r.handlers[name] = h
}

// Names returns the names of all commands in alphabetical order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.handlers)
	slices.Sort(names)
	return names
}

// Collectors returns the Prometheus metrics of the registry.
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.invocations, r.duration}
}

// Invoke runs the command name with payload and returns its result.
//
// All errors are of type *Error.
func (r *Registry) Invoke(ctx context.Context, name string, payload []byte) (any, error) {
	h, ok := r.handlers[name]
	if !ok {
		r.invocations.WithLabelValues("unknown", string(KindNotFound)).Inc()
		return nil, &Error{Kind: KindNotFound, Message: fmt.Sprintf("there is no command named '%s'", name)}
	}

	invocation := uuid.NewString()
	logger := log.With().Str("command", name).Str("invocation", invocation).Logger()
	start := time.Now()

	result, err := h(ctx, r.store, payload)
	r.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		e := Classify(err)
		r.invocations.WithLabelValues(name, string(e.Kind)).Inc()
		logger.Debug().Err(e.Unwrap()).Str("kind", string(e.Kind)).Msg(e.Message)
		return nil, e
	}

	r.invocations.WithLabelValues(name, "ok").Inc()
	logger.Debug().Dur("duration", time.Since(start)).Msg("command completed")
	return result, nil
}

// handle decodes and validates the payload into P before calling fn.
func handle[P any](fn func(ctx context.Context, s *ledger.Store, p P) (any, error)) Handler {
	return func(ctx context.Context, s *ledger.Store, payload json.RawMessage) (any, error) {
		var p P

		payload = bytes.TrimSpace(payload)
		if len(payload) > 0 && !bytes.Equal(payload, []byte("null")) {
			if err := json.Unmarshal(payload, &p); err != nil {
				return nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("invalid input: the payload could not be decoded: %v", err), err: err}
			}
		}

		if err := check(p); err != nil {
			return nil, err
		}

		return fn(ctx, s, p)
	}
}

// InitResult is the result of init_database.
type InitResult struct {
	SeededBudgets int `json:"seededBudgets" example:"5"`
}

func (r *Registry) initDatabase(ctx context.Context, s *ledger.Store, _ json.RawMessage) (any, error) {
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}

	if !r.options.SeedExamples {
		return InitResult{}, nil
	}

	seeded, err := s.SeedExamples(ctx)
	if err != nil {
		return nil, err
	}

	return InitResult{SeededBudgets: seeded}, nil
}
