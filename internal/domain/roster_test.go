package domain

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestNewModelRoster(t *testing.T) {
	roster := NewModelRoster([]string{"a", "", "b", "a", " c "})

	want := []string{"a", "b", "c"}
	if got := roster.Models(); !reflect.DeepEqual(got, want) {
		t.Errorf("Models() = %v, want %v", got, want)
	}
	if roster.Len() != 3 {
		t.Errorf("Len() = %d, want 3", roster.Len())
	}
}

func TestModelRoster_ShuffledIsPermutation(t *testing.T) {
	roster := NewModelRoster(DefaultModels)

	for i := 0; i < 50; i++ {
		order := roster.Shuffled()
		sorted := append([]string(nil), order...)
		sort.Strings(sorted)

		want := append([]string(nil), DefaultModels...)
		sort.Strings(want)

		if !reflect.DeepEqual(sorted, want) {
			t.Fatalf("Shuffled() = %v is not a permutation of %v", order, DefaultModels)
		}
	}
}

func TestModelRoster_ShuffledDoesNotReorderRoster(t *testing.T) {
	roster := NewModelRoster([]string{"a", "b", "c", "d"})
	for i := 0; i < 10; i++ {
		_ = roster.Shuffled()
	}
	if got := roster.Models(); !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("Models() = %v after shuffling, want original order", got)
	}
}

func TestModelRoster_ShuffledVariesAcrossCalls(t *testing.T) {
	roster := NewModelRoster(DefaultModels)

	// 4! = 24 orders; 200 draws landing on one order is vanishingly unlikely.
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		seen[strings.Join(roster.Shuffled(), ",")] = struct{}{}
	}

	if len(seen) < 2 {
		t.Errorf("Shuffled() produced %d distinct orders over 200 calls, want >= 2", len(seen))
	}
}

func TestModelRoster_WithShuffle(t *testing.T) {
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	roster := NewModelRoster([]string{"a", "b", "c"}, WithShuffle(reverse))

	if got := roster.Shuffled(); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("Shuffled() = %v, want [c b a]", got)
	}
}
