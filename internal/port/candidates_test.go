package port

import (
	"math/rand/v2"
	"testing"
)

func TestShuffled_DrawsEachPortOnce(t *testing.T) {
	r := Range{From: 20000, To: 20099}
	c := NewShuffled(r, rand.New(rand.NewPCG(1, 2)))

	seen := make(map[int]bool)
	for {
		p, ok := c.Next()
		if !ok {
			break
		}
		if !r.Contains(p) {
			t.Fatalf("drew %d outside %s", p, r)
		}
		if seen[p] {
			t.Fatalf("drew %d twice", p)
		}
		seen[p] = true
	}

	if len(seen) != r.Size() {
		t.Errorf("drew %d ports, want %d", len(seen), r.Size())
	}
}

func TestShuffled_SeededIsDeterministic(t *testing.T) {
	r := DefaultRange()
	a := NewShuffled(r, rand.New(rand.NewPCG(42, 7)))
	b := NewShuffled(r, rand.New(rand.NewPCG(42, 7)))

	for i := 0; i < 50; i++ {
		pa, _ := a.Next()
		pb, _ := b.Next()
		if pa != pb {
			t.Fatalf("draw %d: %d != %d", i, pa, pb)
		}
	}
}

func TestShuffled_NilRNG(t *testing.T) {
	c := NewShuffled(Range{From: 30000, To: 30000}, nil)
	p, ok := c.Next()
	if !ok || p != 30000 {
		t.Errorf("Next() = %d, %v; want 30000, true", p, ok)
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() after exhaustion should return ok=false")
	}
}

func TestFixed(t *testing.T) {
	c := Fixed(10000, 10001, 10002)
	for _, want := range []int{10000, 10001, 10002} {
		p, ok := c.Next()
		if !ok || p != want {
			t.Fatalf("Next() = %d, %v; want %d, true", p, ok, want)
		}
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() after exhaustion should return ok=false")
	}
}
