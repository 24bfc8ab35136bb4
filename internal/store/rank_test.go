package store

import (
	"sort"
	"testing"
)

func TestRankBetween(t *testing.T) {
	cases := []struct {
		lo, hi string
	}{
		{"", ""},
		{"a", ""},
		{"", "a"},
		{"a", "c"},
		{"a", "b"},
		{"h", "h5"},
		{"zz", ""},
	}
	for _, tc := range cases {
		r, err := RankBetween(tc.lo, tc.hi)
		if err != nil {
			t.Fatalf("RankBetween(%q, %q): %v", tc.lo, tc.hi, err)
		}
		if tc.lo != "" && !(tc.lo < r) {
			t.Fatalf("RankBetween(%q, %q) = %q, not above lower bound", tc.lo, tc.hi, r)
		}
		if tc.hi != "" && !(r < tc.hi) {
			t.Fatalf("RankBetween(%q, %q) = %q, not below upper bound", tc.lo, tc.hi, r)
		}
	}
}

func TestRankBetween_PrefixAdjacent_NoSpace(t *testing.T) {
	if _, err := RankBetween("y", "y0"); err == nil {
		t.Fatalf("expected error for prefix-adjacent bounds, got nil")
	}
}

func TestRankBetween_RejectsInvertedBounds(t *testing.T) {
	if _, err := RankBetween("m", "c"); err == nil {
		t.Fatalf("expected error for inverted bounds")
	}
	if _, err := RankBetween("!", ""); err == nil {
		t.Fatalf("expected error for invalid characters")
	}
}

func TestRanks_SortedAndDistinct(t *testing.T) {
	for _, n := range []int{0, 1, 2, 35, 36, 500} {
		rs, err := Ranks(n)
		if err != nil {
			t.Fatalf("Ranks(%d): %v", n, err)
		}
		if len(rs) != n {
			t.Fatalf("Ranks(%d) returned %d ranks", n, len(rs))
		}
		if !sort.StringsAreSorted(rs) {
			t.Fatalf("Ranks(%d) not sorted: %v", n, rs)
		}
		seen := map[string]bool{}
		for _, r := range rs {
			if seen[r] {
				t.Fatalf("Ranks(%d) repeats %q", n, r)
			}
			seen[r] = true
		}
		if n > 0 {
			if _, err := RankAfter(rs[n-1]); err != nil {
				t.Fatalf("no room after last rank %q: %v", rs[n-1], err)
			}
		}
	}
}
