package domain

import (
	"slices"
	"testing"
)

func TestNewItemSetCollapsesInput(t *testing.T) {
	s := NewItemSet("milk", " eggs ", "milk", "", "  ")

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if !s.Contains("milk") || !s.Contains("eggs") {
		t.Errorf("set = %v, want milk and eggs", s.Items())
	}
	if s.Contains("") {
		t.Errorf("empty identifier must not be stored")
	}
}

func TestItemSetDerivationsDoNotMutate(t *testing.T) {
	needed := NewItemSet("milk", "eggs", "bread")
	stocked := NewItemSet("milk", "eggs", "coffee")

	covered := needed.Intersect(stocked)
	remaining := needed.Without(stocked)
	all := needed.Union(stocked)

	if got := covered.Items(); !slices.Equal(got, []string{"eggs", "milk"}) {
		t.Errorf("Intersect = %v, want [eggs milk]", got)
	}
	if got := remaining.Items(); !slices.Equal(got, []string{"bread"}) {
		t.Errorf("Without = %v, want [bread]", got)
	}
	if got := all.Items(); !slices.Equal(got, []string{"bread", "coffee", "eggs", "milk"}) {
		t.Errorf("Union = %v, want [bread coffee eggs milk]", got)
	}

	// the receivers must be left untouched
	if got := needed.Items(); !slices.Equal(got, []string{"bread", "eggs", "milk"}) {
		t.Errorf("needed mutated: %v", got)
	}
	if got := stocked.Items(); !slices.Equal(got, []string{"coffee", "eggs", "milk"}) {
		t.Errorf("stocked mutated: %v", got)
	}
}

func TestItemSetItemsSorted(t *testing.T) {
	s := NewItemSet("zucchini", "apples", "milk")

	got := s.Items()
	want := []string{"apples", "milk", "zucchini"}
	if !slices.Equal(got, want) {
		t.Errorf("Items = %v, want %v", got, want)
	}
}

func TestItemSetEmptyBehavior(t *testing.T) {
	var empty ItemSet

	if empty.Len() != 0 {
		t.Errorf("nil set Len = %d, want 0", empty.Len())
	}
	if empty.Contains("milk") {
		t.Errorf("nil set should contain nothing")
	}
	if got := NewItemSet("milk").Intersect(empty); got.Len() != 0 {
		t.Errorf("intersect with nil set = %v, want empty", got.Items())
	}
	if got := NewItemSet("milk").Without(empty); got.Len() != 1 {
		t.Errorf("without nil set = %v, want [milk]", got.Items())
	}
}
