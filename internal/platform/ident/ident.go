// Package ident allocates globally unique string identifiers (MRNs, NPIs,
// encounter numbers) with a bounded retry budget. Exhausting the budget is a
// fatal generation error: the identifier space is too small for the
// requested volume.
package ident

import "fmt"

// DefaultBudget is the retry budget applied when none is given.
const DefaultBudget = 100

// ExhaustionError reports that no unused identifier could be found for an
// entity within the retry budget.
type ExhaustionError struct {
	Entity   string
	Attempts int
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("identifier space exhausted for %s after %d attempts", e.Entity, e.Attempts)
}

// Allocator tracks claimed identifiers for one entity type. It is not safe
// for concurrent use; parallel workers each own their own Allocator and the
// orchestrator merges them with Absorb.
type Allocator struct {
	entity string
	budget int
	used   map[string]struct{}
}

// NewAllocator creates an allocator for the named entity type. budget <= 0
// selects DefaultBudget.
func NewAllocator(entity string, budget int) *Allocator {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Allocator{
		entity: entity,
		budget: budget,
		used:   make(map[string]struct{}),
	}
}

// Claim draws candidates from gen until one is unused, claims it, and
// returns it. Returns an *ExhaustionError once the retry budget is spent.
func (a *Allocator) Claim(gen func() string) (string, error) {
	for i := 0; i < a.budget; i++ {
		v := gen()
		if _, taken := a.used[v]; taken {
			continue
		}
		a.used[v] = struct{}{}
		return v, nil
	}
	return "", &ExhaustionError{Entity: a.entity, Attempts: a.budget}
}

// Add claims v directly, reporting false if it was already taken. Used for
// merge-time collision checks across worker partitions.
func (a *Allocator) Add(v string) bool {
	if _, taken := a.used[v]; taken {
		return false
	}
	a.used[v] = struct{}{}
	return true
}

// Absorb claims every identifier held by other, returning the first value
// that collides, if any.
func (a *Allocator) Absorb(other *Allocator) (string, bool) {
	for v := range other.used {
		if !a.Add(v) {
			return v, false
		}
	}
	return "", true
}

// Len returns the number of claimed identifiers.
func (a *Allocator) Len() int { return len(a.used) }
