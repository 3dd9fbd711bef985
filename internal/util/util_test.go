package util

import "testing"

// TestHasherDeterministic checks a hasher gives stable results for equal
// inputs and distinct results for common near-misses.
func TestHasherDeterministic(t *testing.T) {
	t.Parallel()

	h := Hasher[string](1)
	if h("alpha") != h("alpha") {
		t.Fatalf("hash of equal strings differs")
	}
	if h("alpha") == h("alphb") {
		t.Fatalf("adjacent strings collide")
	}

	hi := Hasher[int](1)
	if hi(10) != hi(10) {
		t.Fatalf("hash of equal ints differs")
	}
	if hi(10) == hi(11) {
		t.Fatalf("adjacent ints collide")
	}
}

// TestHasherSeed checks two seeds disagree somewhere across a small key
// set. Any single key may collide; all of them colliding means the seed is
// ignored.
func TestHasherSeed(t *testing.T) {
	t.Parallel()

	h1 := Hasher[string](1)
	h2 := Hasher[string](2)
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	same := 0
	for _, k := range keys {
		if h1(k) == h2(k) {
			same++
		}
	}
	if same == len(keys) {
		t.Fatalf("seed has no effect on string hashing")
	}
}

// TestMix64 checks the mixer is a bijection on a sample (no two inputs map
// to one output) and moves low-entropy inputs off their input value.
func TestMix64(t *testing.T) {
	t.Parallel()

	seen := make(map[uint64]uint64)
	for i := uint64(0); i < 10000; i++ {
		m := Mix64(i)
		if prev, dup := seen[m]; dup {
			t.Fatalf("Mix64(%d) == Mix64(%d)", i, prev)
		}
		seen[m] = i
	}
	if Mix64(1) == 1 {
		t.Fatalf("Mix64 fixed small input in place")
	}
}

// TestNextPow2 checks rounding at and around powers of two and the clamp at
// the top of the range.
func TestNextPow2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1023, 1024},
		{1024, 1024},
		{1025, 2048},
		{1 << 62, 1 << 62},
		{1<<62 + 1, 1 << 63},
		{1<<63 + 1, 1 << 63},
	}
	for _, c := range cases {
		if got := NextPow2(c.in); got != c.want {
			t.Fatalf("NextPow2(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	t.Parallel()

	for _, n := range []uint64{1, 2, 4, 1024, 1 << 63} {
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []uint64{0, 3, 6, 1000, 1<<63 + 1} {
		if IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true", n)
		}
	}
}
