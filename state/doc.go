// Package state provides a small in-memory container for a fixed set of named
// variables with diffing partial updates.
//
// # Core Components
//
// State - the variable container with GetVar, SetVar, Keys and Set
//
// Report - the per-key change report returned by Set
//
// Config - initialization parameters resolved into a State by NewFromConfig
//
// # Partial Updates
//
// Set merges a partial mapping into the current variables, compares the
// result against the previous values and commits the merged mapping in a
// single assignment:
//
//	s := state.New(map[string]any{"a": 1, "b": 2, "c": 3})
//	report := s.Set(map[string]any{"b": 5, "z": 99})
//	// s: a=1 b=5 c=3 ("z" is not a known key and is ignored)
//	// report["b"]: {NewValue: 5, OldValue: 2, HasChanged: true}
//	// report["a"]: {NewValue: 1, OldValue: 1, HasChanged: false}
//
// The key set never changes through Set. SetVar is the only way to introduce
// a new key. SetStrict rejects partials that name unknown keys instead of
// ignoring them.
//
// # Change Detection
//
// HasChanged uses identity, not deep equality. Comparable values use ==, so
// 1 and "1" differ, and int(1) and int64(1) differ. Maps and slices are equal
// only when they share the same backing storage. Two distinct maps with the
// same contents are reported as changed.
//
// # Key Order
//
// Go maps are unordered, so State tracks key order itself. Initial keys are
// ordered naturally ("v2" before "v10") unless WithOrder supplies an explicit
// order. Keys added later by SetVar are appended.
//
// # Concurrency
//
// State performs no locking. A State shared between goroutines must be
// guarded by its owner; Set and SetVar are not safe for concurrent use.
//
// # Observer Integration
//
// State emits events through an observability.Observer:
//
//	s := state.New(vars, state.WithObserver(observability.NewSlogObserver(logger)))
//	s.Set(partial)  // emits EventStateUpdate
//
// The default observer is NoOpObserver.
package state
