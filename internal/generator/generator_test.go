package generator

import (
	"sort"
	"testing"
)

func TestShuffleIsPermutation(t *testing.T) {
	g := NewWithSeed(1)
	for n := 0; n <= 12; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = i * 3
		}
		out := Shuffle(g, in)
		if len(out) != n {
			t.Fatalf("n=%d: expected length %d, got %d", n, n, len(out))
		}
		sorted := append([]int(nil), out...)
		sort.Ints(sorted)
		for i := range in {
			if sorted[i] != in[i] {
				t.Fatalf("n=%d: output is not a permutation of input: %v", n, out)
			}
		}
	}
}

func TestShuffleDoesNotModifyInput(t *testing.T) {
	g := NewWithSeed(7)
	in := []string{"a", "b", "c", "d", "e"}
	_ = Shuffle(g, in)
	want := []string{"a", "b", "c", "d", "e"}
	for i := range want {
		if in[i] != want[i] {
			t.Fatalf("input modified: %v", in)
		}
	}
}

func TestShuffleEmpty(t *testing.T) {
	out := Shuffle(NewWithSeed(1), []int{})
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
	if got := NewWithSeed(1).Perm(0); len(got) != 0 {
		t.Fatalf("expected empty permutation, got %v", got)
	}
}

func TestShuffleNotBiasedTowardIdentity(t *testing.T) {
	g := NewWithSeed(42)
	const trials = 6000
	counts := map[[3]int]int{}
	for i := 0; i < trials; i++ {
		out := Shuffle(g, []int{0, 1, 2})
		counts[[3]int{out[0], out[1], out[2]}]++
	}
	if len(counts) != 6 {
		t.Fatalf("expected all 6 permutations, got %d", len(counts))
	}
	for perm, c := range counts {
		if c < trials/6-250 || c > trials/6+250 {
			t.Fatalf("permutation %v appeared %d times, expected about %d", perm, c, trials/6)
		}
	}
}

func TestPermSameSeedIsDeterministic(t *testing.T) {
	a := NewWithSeed(99).Perm(20)
	b := NewWithSeed(99).Perm(20)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical permutations for identical seeds")
		}
	}
}
