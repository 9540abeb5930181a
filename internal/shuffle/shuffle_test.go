package shuffle

import (
	"fmt"
	"slices"
	"testing"
)

func TestPermute_IsPermutation(t *testing.T) {
	sh := NewSeeded(1)
	for _, n := range []int{0, 1, 2, 4, 17, 100} {
		in := make([]int, n)
		for i := range in {
			in[i] = i * 3
		}
		got := Permuted(sh, in)
		if len(got) != n {
			t.Fatalf("len = %d, want %d", len(got), n)
		}
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		if !slices.Equal(sorted, in) {
			t.Errorf("Permuted(%d items) is not a permutation: %v", n, got)
		}
	}
}

func TestPermuted_LeavesInputUntouched(t *testing.T) {
	in := []string{"A", "B", "C", "D"}
	_ = Permuted(NewSeeded(7), in)
	if !slices.Equal(in, []string{"A", "B", "C", "D"}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestPermute_Uniform(t *testing.T) {
	sh := NewSeeded(42)
	const rounds = 60000
	counts := make(map[string]int)
	for i := 0; i < rounds; i++ {
		s := []int{1, 2, 3}
		Permute(sh, s)
		counts[fmt.Sprint(s)]++
	}
	if len(counts) != 6 {
		t.Fatalf("saw %d distinct permutations, want 6", len(counts))
	}
	want := rounds / 6
	for perm, c := range counts {
		// 5% tolerance is far outside the expected deviation at this sample size.
		if c < want*95/100 || c > want*105/100 {
			t.Errorf("permutation %s seen %d times, want ~%d", perm, c, want)
		}
	}
}

func TestSample(t *testing.T) {
	sh := NewSeeded(3)
	pool := []int{10, 11, 12, 13, 14, 15}

	tests := []struct {
		k    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{4, 4},
		{6, 6},
		{50, 6},
	}

	for _, tt := range tests {
		got := Sample(sh, pool, tt.k)
		if len(got) != tt.want {
			t.Errorf("Sample(k=%d) len = %d, want %d", tt.k, len(got), tt.want)
		}
		seen := make(map[int]bool)
		for _, v := range got {
			if !slices.Contains(pool, v) {
				t.Errorf("Sample(k=%d) returned %d, not in pool", tt.k, v)
			}
			if seen[v] {
				t.Errorf("Sample(k=%d) returned duplicate %d", tt.k, v)
			}
			seen[v] = true
		}
	}
}

func TestSample_EmptyPool(t *testing.T) {
	got := Sample(NewSeeded(1), []int{}, 20)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
