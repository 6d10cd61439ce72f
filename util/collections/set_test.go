package collections

import (
	"sort"
	"testing"
)

func TestSetMembership(t *testing.T) {
	set := NewSet(1, 2, 3)
	set.Add(3)
	set.Add(4)
	set.Remove(1)
	set.Remove(10)

	if set.Len() != 3 {
		t.Fatalf("expected 3 elements, got %d", set.Len())
	}
	for _, value := range []int{2, 3, 4} {
		if !set.Contains(value) {
			t.Fatalf("expected set to contain %d", value)
		}
	}
	if set.Contains(1) {
		t.Fatal("expected 1 to be removed")
	}

	values := set.Slice()
	sort.Ints(values)
	if len(values) != 3 || values[0] != 2 || values[2] != 4 {
		t.Fatalf("unexpected slice %v", values)
	}
}

func TestSetRelations(t *testing.T) {
	small := NewSet("a", "b")
	large := NewSet("a", "b", "c")

	tests := []struct {
		name     string
		got      bool
		expected bool
	}{
		{"SmallSubsetOfLarge", small.IsSubset(large), true},
		{"LargeSubsetOfSmall", large.IsSubset(small), false},
		{"SubsetOfItself", small.IsSubset(small), true},
		{"EmptySubset", NewSet[string]().IsSubset(small), true},
		{"Equal", small.Equal(NewSet("b", "a")), true},
		{"NotEqual", small.Equal(large), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	difference := large.Difference(small)
	if !difference.Equal(NewSet("c")) {
		t.Fatalf("expected difference {c}, got %v", difference)
	}
	if small.Difference(large).Len() != 0 {
		t.Fatal("expected empty difference")
	}
}
