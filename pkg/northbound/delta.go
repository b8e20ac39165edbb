// Package northbound implements the abstract configuration surface of §6:
// an ordered stream of (path, op, value) deltas, validated as a whole before
// any is applied to the running protocol instances, with the REST API (pkg/northbound/api) and
// the on-disk file watcher (pkg/northbound/file) both producing the same
// delta stream so either ingestion path drives identical behavior.
package northbound

import (
	"fmt"
	"sort"
)

// Op is the kind of change one Delta represents.
type Op int

const (
	OpCreate Op = iota
	OpModify
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Delta is one configuration change: a slash-separated path into the
// config tree (e.g. "/protocol/ospf/instance/default/area/0.0.0.0/interface/eth0/cost"),
// the operation, and the new value (nil for OpDelete).
type Delta struct {
	Path  string
	Op    Op
	Value any
}

// Transaction is a batch of deltas validated as a unit: if any delta fails
// validation, none is applied (see ApplyTransaction for what happens when
// an Applier itself fails).
type Transaction struct {
	Deltas []Delta
}

// Validator is implemented by a protocol instance (OSPF/IS-IS/BGP) willing
// to accept configuration changes under a path prefix it owns.
type Validator interface {
	// Validate reports whether applying delta would be accepted, without
	// mutating any state. Implementations should be side-effect-free.
	Validate(d Delta) error
}

// Applier is implemented by a protocol instance to actually apply a
// validated delta, returning an error only for implementation defects
// (Validate should have already rejected anything Apply would reject).
type Applier interface {
	Apply(d Delta) error
}

// Registry routes deltas to the Validator/Applier registered for the
// path prefix that owns them (e.g. "/protocol/ospf" routes to the OSPF
// instance registry), giving a single ingestion seam for all three
// protocols plus keychain and SR config.
type Registry struct {
	owners map[string]ownerEntry
}

type ownerEntry struct {
	prefix    string
	validator Validator
	applier   Applier
}

func NewRegistry() *Registry {
	return &Registry{owners: make(map[string]ownerEntry)}
}

// Register binds prefix to the given validator/applier pair. Registering
// the same prefix twice replaces the prior binding (a protocol instance
// restart re-registering itself).
func (r *Registry) Register(prefix string, v Validator, a Applier) {
	r.owners[prefix] = ownerEntry{prefix: prefix, validator: v, applier: a}
}

func (r *Registry) Unregister(prefix string) {
	delete(r.owners, prefix)
}

func (r *Registry) ownerFor(path string) (ownerEntry, bool) {
	var best ownerEntry
	found := false
	for _, o := range r.owners {
		if hasPrefix(path, o.prefix) {
			if !found || len(o.prefix) > len(best.prefix) {
				best = o
				found = true
			}
		}
	}
	return best, found
}

func hasPrefix(path, prefix string) bool {
	if len(path) < len(prefix) {
		return false
	}
	return path[:len(prefix)] == prefix
}

// ApplyTransaction validates every delta against its owner before applying
// any of them (validate-all, then apply-all), so a delta rejected by any
// Validator leaves no state changed. Deltas are applied in path order, not
// submission order. There is no rollback: if an Applier returns an error,
// the deltas applied before it stay applied and the rest are not applied.
func (r *Registry) ApplyTransaction(tx Transaction) error {
	ordered := make([]Delta, len(tx.Deltas))
	copy(ordered, tx.Deltas)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Path < ordered[j].Path })

	owners := make([]ownerEntry, len(ordered))
	for i, d := range ordered {
		o, ok := r.ownerFor(d.Path)
		if !ok {
			return fmt.Errorf("northbound: no owner registered for path %q", d.Path)
		}
		if err := o.validator.Validate(d); err != nil {
			return fmt.Errorf("northbound: validate %q: %w", d.Path, err)
		}
		owners[i] = o
	}
	for i, d := range ordered {
		if err := owners[i].applier.Apply(d); err != nil {
			return fmt.Errorf("northbound: apply %q: %w", d.Path, err)
		}
	}
	return nil
}
