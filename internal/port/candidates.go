package port

import "math/rand/v2"

// Candidates yields ports to try, in order. ok is false once the sequence
// is exhausted.
type Candidates interface {
	Next() (port int, ok bool)
}

type shuffled struct {
	remaining []int
	rng       *rand.Rand
}

// NewShuffled returns every port of r exactly once in uniformly random
// order. A nil rng uses a randomly seeded source.
func NewShuffled(r Range, rng *rand.Rand) Candidates {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	ports := make([]int, 0, r.Size())
	for p := r.From; p <= r.To; p++ {
		ports = append(ports, p)
	}
	return &shuffled{remaining: ports, rng: rng}
}

// Next draws without replacement (lazy Fisher-Yates).
func (s *shuffled) Next() (int, bool) {
	n := len(s.remaining)
	if n == 0 {
		return 0, false
	}
	i := s.rng.IntN(n)
	p := s.remaining[i]
	s.remaining[i] = s.remaining[n-1]
	s.remaining = s.remaining[:n-1]
	return p, true
}

type fixed struct {
	ports []int
	pos   int
}

// Fixed returns the given ports in order.
func Fixed(ports ...int) Candidates {
	return &fixed{ports: ports}
}

func (f *fixed) Next() (int, bool) {
	if f.pos >= len(f.ports) {
		return 0, false
	}
	p := f.ports[f.pos]
	f.pos++
	return p, true
}
