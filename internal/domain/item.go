package domain

import (
	"sort"
	"strings"
)

// Represents a single grocery item known to the catalog.
// A FoodItem carries display metadata only; planning works purely on the
// item identifier.
type FoodItem struct {
	ItemID      string
	Name        string
	Aisle       string
	Category    string
	Description string
	ImageURL    string
}

// ItemSet is an order-insensitive set of item identifiers.
//
// All derivations (Intersect, Without, Union) return new sets and never
// mutate their receiver or argument. The planner relies on this: sibling
// branches of the route search hold independent views of the items still
// needed.
type ItemSet map[string]struct{}

// NewItemSet builds a set from raw identifiers. Identifiers are trimmed,
// empty strings are dropped, duplicates collapse.
func NewItemSet(ids ...string) ItemSet {
	s := make(ItemSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

func (s ItemSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

func (s ItemSet) Len() int { return len(s) }

// Intersect returns the items present in both sets.
func (s ItemSet) Intersect(other ItemSet) ItemSet {
	out := make(ItemSet)
	for id := range s {
		if other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Without returns the items of s that are not in other.
func (s ItemSet) Without(other ItemSet) ItemSet {
	out := make(ItemSet)
	for id := range s {
		if !other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Union returns the items present in either set.
func (s ItemSet) Union(other ItemSet) ItemSet {
	out := make(ItemSet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Items returns the identifiers sorted, for deterministic output.
func (s ItemSet) Items() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
