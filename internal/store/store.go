package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Store is a mapping from ID to value-of-type-T, owning its module id, a
// monotonically increasing counter, the backing table and the set of module
// ids already merged in via Extend. See spec.md §3.
//
// Store has no id type parameter: every store is keyed by store.ID, and the
// per-kind names callers use (FuncID, NameID, TVarID) are aliases of it,
// keeping Store itself kind-agnostic.
type Store[T any] struct {
	module  ModuleID
	counter uint32
	table   map[ID]T
	merged  map[ModuleID]struct{}
}

// New creates an empty Store scoped to the given module id.
func New[T any](mod ModuleID) *Store[T] {
	return &Store[T]{
		module: mod,
		table:  make(map[ID]T),
		merged: map[ModuleID]struct{}{mod: {}},
	}
}

// Module returns the module id this store mints ids under.
func (s *Store[T]) Module() ModuleID { return s.module }

// FreshID mints a new, never-before-returned id scoped to this store's
// module. Spec §8 invariant: no two calls to FreshID on the same store
// return equal ids.
func (s *Store[T]) FreshID() ID {
	s.counter++
	return NewID(s.module, s.counter)
}

// Add mints a fresh id, stores v under it, and returns the id.
func (s *Store[T]) Add(v T) ID {
	id := s.FreshID()
	s.table[id] = v
	return id
}

// Insert stores v under an explicit, already-minted id (used when a value
// must be keyed by an id created elsewhere in the same module, e.g. when
// the resolver pre-allocates a name id before the value it describes is
// fully built).
func (s *Store[T]) Insert(id ID, v T) {
	s.table[id] = v
}

// Get looks up the value stored under id.
func (s *Store[T]) Get(id ID) (T, bool) {
	v, ok := s.table[id]
	return v, ok
}

// MustGet looks up id, panicking if absent. Reserved for lowering-internal
// invariants the type checker is supposed to have already guaranteed (spec
// §7 "lowering internal" error kind covers the recoverable half of this;
// MustGet is for call sites where recovery is impossible because the id
// itself is synthesized by an earlier pass in this same run).
func (s *Store[T]) MustGet(id ID) T {
	v, ok := s.table[id]
	if !ok {
		panic("store: no value for id " + id.String())
	}
	return v
}

// Len returns the number of live entries.
func (s *Store[T]) Len() int { return len(s.table) }

// Each calls f for every (id, value) pair, in ascending id order — needed
// anywhere output must be deterministic across runs (diagnostics, golden
// tests, pub_decls digesting).
func (s *Store[T]) Each(f func(ID, T)) {
	ids := make([]ID, 0, len(s.table))
	for id := range s.table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		f(id, s.table[id])
	}
}

// Extend merges other's entries into s, refusing to merge a store scoped to
// the same module id as s, or a module id already merged into s (spec §3
// invariant 2, §8 Extend property).
func (s *Store[T]) Extend(other *Store[T]) error {
	if other.module == s.module {
		return &ExtendError{Reason: "same module id", Module: other.module}
	}
	if _, already := s.merged[other.module]; already {
		return &ExtendError{Reason: "module already merged", Module: other.module}
	}
	for id, v := range other.table {
		s.table[id] = v
	}
	s.merged[other.module] = struct{}{}
	return nil
}

// ExtendError reports a refused Extend call.
type ExtendError struct {
	Reason string
	Module ModuleID
}

func (e *ExtendError) Error() string {
	return "store: cannot extend: " + e.Reason
}

// Digest returns a stable hash over the store's contents: every (id, value)
// pair in ascending id order, rendered with stringify and hashed with
// sha256. Two stores with identical id→value pairs always produce the same
// digest regardless of insertion order, since Each (which this is built on)
// already iterates in sorted id order — mirrors the teacher's Iface.Digest
// field, generalized from "hash a module's exports" to "hash any store",
// useful for golden-testing cross-module pub_decls export maps without
// depending on Go's randomized map iteration order.
func (s *Store[T]) Digest(stringify func(T) string) string {
	h := sha256.New()
	s.Each(func(id ID, v T) {
		fmt.Fprintf(h, "%s=%s\n", id.String(), stringify(v))
	})
	return hex.EncodeToString(h.Sum(nil))
}

// Transmute maps every value through f, producing a new Store over a
// different value type Q. Entries for which f returns (_, false) are
// dropped. Ids and the counter (so further FreshID calls on the result
// cannot collide with ids already in it) are preserved; spec §8.
func Transmute[T, Q any](s *Store[T], f func(T) (Q, bool)) *Store[Q] {
	out := &Store[Q]{
		module:  s.module,
		counter: s.counter,
		table:   make(map[ID]Q, len(s.table)),
		merged:  make(map[ModuleID]struct{}, len(s.merged)),
	}
	for mod := range s.merged {
		out.merged[mod] = struct{}{}
	}
	for id, v := range s.table {
		if q, ok := f(v); ok {
			out.table[id] = q
		}
	}
	return out
}
