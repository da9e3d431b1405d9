package state

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/varstate/observability"
)

// State holds a mapping of variable names to values.
//
// The key set is fixed by New: Set only replaces values of existing keys.
// SetVar writes a single key unconditionally and may add one.
//
// State is not safe for concurrent use. Owners sharing a State between
// goroutines must serialize Set and SetVar themselves.
type State struct {
	id       string
	vars     map[string]any
	order    []string
	observer observability.Observer
}

type options struct {
	observer observability.Observer
	order    []string
	keyOrder KeyOrder
}

// Option configures New.
type Option func(*options)

// WithObserver sets the observer events are emitted to. Nil means NoOpObserver.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithOrder fixes the order Keys reports initial keys in. Listed keys come
// first; keys of the initial mapping not listed follow in the default order.
// Listed keys absent from the initial mapping are skipped.
func WithOrder(keys ...string) Option {
	return func(o *options) {
		o.order = keys
	}
}

// WithKeyOrder selects the default ordering for initial keys.
func WithKeyOrder(order KeyOrder) Option {
	return func(o *options) {
		o.keyOrder = order
	}
}

// New creates a State over initial.
//
// The map is used as is, not copied; after New the State owns it. No
// validation is performed and an empty or nil map is accepted.
//
// Example:
//
//	s := state.New(map[string]any{"count": 0, "label": "idle"})
func New(initial map[string]any, opts ...Option) *State {
	o := options{keyOrder: KeyOrderNatural}
	for _, opt := range opts {
		opt(&o)
	}

	if initial == nil {
		initial = make(map[string]any)
	}

	s := &State{
		id:       uuid.New().String(),
		vars:     initial,
		order:    initialOrder(initial, o.order, o.keyOrder),
		observer: observability.OrNoOp(o.observer),
	}

	s.emit(EventStateCreate, observability.LevelVerbose, map[string]any{
		"keys": len(s.order),
	})

	return s
}

// NewFromConfig creates a State using cfg, resolving cfg.Observer through
// the observability registry. opts are applied after cfg and take precedence.
func NewFromConfig(cfg Config, initial map[string]any, opts ...Option) (*State, error) {
	merged := DefaultConfig()
	merged.Merge(&cfg)

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	observer, err := observability.GetObserver(merged.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	all := append([]Option{WithObserver(observer), WithKeyOrder(merged.KeyOrder)}, opts...)
	return New(initial, all...), nil
}

func initialOrder(vars map[string]any, explicit []string, mode KeyOrder) []string {
	order := make([]string, 0, len(vars))
	placed := make(map[string]bool, len(explicit))

	for _, k := range explicit {
		if _, ok := vars[k]; ok && !placed[k] {
			order = append(order, k)
			placed[k] = true
		}
	}

	rest := make([]string, 0, len(vars)-len(order))
	for k := range vars {
		if !placed[k] {
			rest = append(rest, k)
		}
	}

	if mode == KeyOrderLexical {
		slices.Sort(rest)
	} else {
		sortNatural(rest)
	}

	return append(order, rest...)
}

// ID returns the identifier attached to this State's events.
func (s *State) ID() string {
	return s.id
}

// Len returns the number of variables held.
func (s *State) Len() int {
	return len(s.vars)
}

// GetVar returns the value of key, or nil when key is not held.
func (s *State) GetVar(key string) any {
	return s.vars[key]
}

// Lookup returns the value of key and whether the key is held.
func (s *State) Lookup(key string) (any, bool) {
	val, exists := s.vars[key]
	return val, exists
}

// SetVar writes value under key, adding the key if it is not held.
func (s *State) SetVar(key string, value any) {
	_, exists := s.vars[key]
	if !exists {
		s.order = append(s.order, key)
	}
	s.vars[key] = value

	s.emit(EventVarSet, observability.LevelVerbose, map[string]any{
		"key":   key,
		"added": !exists,
	})
}

// Keys returns the held keys in insertion order. The slice is a fresh copy.
func (s *State) Keys() []string {
	return slices.Clone(s.order)
}

// Set applies partial to the state and reports, for every key held before
// the call, its old value, new value and whether it changed.
//
// Keys of partial the state does not hold are ignored; they are never added
// and never appear in the report. Keys the state holds but partial omits keep
// their value and are reported as unchanged.
//
// Example:
//
//	s := state.New(map[string]any{"a": 1, "b": 2, "c": 3})
//	report := s.Set(map[string]any{"b": 5, "z": 99})
//	// report["b"] = Change{NewValue: 5, OldValue: 2, HasChanged: true}
func (s *State) Set(partial map[string]any) Report {
	if unknown := s.unknownKeys(partial); len(unknown) > 0 {
		s.emit(EventUnknownKeys, observability.LevelWarning, map[string]any{
			"keys":   unknown,
			"action": "ignored",
		})
	}
	return s.apply(partial)
}

// SetStrict is Set for callers that treat unknown keys as an error. If
// partial names any key the state does not hold, nothing is applied and an
// *UnknownKeyError is returned.
func (s *State) SetStrict(partial map[string]any) (Report, error) {
	if unknown := s.unknownKeys(partial); len(unknown) > 0 {
		s.emit(EventUnknownKeys, observability.LevelWarning, map[string]any{
			"keys":   unknown,
			"action": "rejected",
		})
		return nil, &UnknownKeyError{Keys: unknown}
	}
	return s.apply(partial), nil
}

func (s *State) apply(partial map[string]any) Report {
	previous := s.vars
	next := merge(previous, partial)
	s.vars = next

	report := compare(previous, next, partial)

	s.emit(EventStateUpdate, observability.LevelVerbose, map[string]any{
		"keys":    len(report),
		"changed": report.Changed(),
	})

	return report
}

func (s *State) unknownKeys(partial map[string]any) []string {
	var unknown []string
	for k := range partial {
		if _, ok := s.vars[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sortNatural(unknown)
	return unknown
}

func (s *State) emit(typ observability.EventType, level observability.Level, data map[string]any) {
	data["state_id"] = s.id
	s.observer.OnEvent(context.Background(), observability.NewEvent(typ, level, "state", data))
}

// merge builds the candidate mapping: every current key, taking the partial
// value where one is given.
func merge(current, partial map[string]any) map[string]any {
	next := make(map[string]any, len(current))
	for k, v := range current {
		if pv, ok := partial[k]; ok {
			next[k] = pv
		} else {
			next[k] = v
		}
	}
	return next
}

// compare reports one Change per key of current. Keys partial omits carry
// the same value over and are unchanged without being compared.
func compare(current, next, partial map[string]any) Report {
	report := make(Report, len(current))
	for k, oldValue := range current {
		newValue := next[k]
		_, touched := partial[k]
		report[k] = Change{
			NewValue:   newValue,
			OldValue:   oldValue,
			HasChanged: touched && !identical(newValue, oldValue),
		}
	}
	return report
}
