package port

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/gym-gazebo/gzlaunch/internal/logging"
)

// ErrExhausted is returned when no candidate port turned out to be free.
var ErrExhausted = errors.New("no free port in range")

// Allocator finds exclusive ports.
type Allocator struct {
	Range  Range
	Prober Prober

	// Candidates builds the draw sequence for one allocation.
	// nil draws the whole Range in random order.
	Candidates func() Candidates

	// MaxAttempts caps the number of probes; <= 0 means no cap
	// beyond the candidate sequence.
	MaxAttempts int

	listen func(network, address string) (net.Listener, error)
}

// NewAllocator creates an allocator over r. A nil prober uses TCPProber
// with its defaults.
func NewAllocator(r Range, prober Prober) *Allocator {
	if prober == nil {
		prober = &TCPProber{}
	}
	return &Allocator{
		Range:  r,
		Prober: prober,
	}
}

// Allocate returns network parameters for a port observed to be free.
// Nothing is held afterwards, see Reserve.
func (a *Allocator) Allocate(ctx context.Context) (*Allocation, error) {
	p, err := a.find(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewAllocation(p), nil
}

// Reserve is Allocate followed by binding a listener on the port. A bind
// failure counts as a collision. The caller must Release the reservation.
func (a *Allocator) Reserve(ctx context.Context) (*Reservation, error) {
	listen := a.listen
	if listen == nil {
		listen = net.Listen
	}

	var ln net.Listener
	p, err := a.find(ctx, func(port int) error {
		l, err := listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
		if err != nil {
			return err
		}
		ln = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Reservation{Allocation: *NewAllocation(p), listener: ln}, nil
}

func (a *Allocator) candidates() Candidates {
	if a.Candidates != nil {
		return a.Candidates()
	}
	return NewShuffled(a.Range, nil)
}

func (a *Allocator) find(ctx context.Context, claim func(port int) error) (int, error) {
	if err := a.Range.Validate(); err != nil {
		return 0, err
	}
	prober := a.Prober
	if prober == nil {
		prober = &TCPProber{}
	}

	cands := a.candidates()
	attempts := 0
	var lastErr error

	for a.MaxAttempts <= 0 || attempts < a.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		p, ok := cands.Next()
		if !ok {
			break
		}
		if !a.Range.Contains(p) {
			logging.Debug("candidate outside range, skipping", "port", p, "range", a.Range.String())
			continue
		}

		attempts++
		inUse, err := prober.InUse(ctx, p)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, ctxErr
			}
			logging.Warn("port probe failed, retrying", "port", p, "error", err)
			lastErr = err
			continue
		}
		if inUse {
			logging.Warn("port in use, retrying", "port", p)
			continue
		}

		if claim != nil {
			if err := claim(p); err != nil {
				logging.Warn("port bind failed, retrying", "port", p, "error", err)
				lastErr = err
				continue
			}
		}

		logging.Debug("allocated port", "port", p, "probes", attempts)
		return p, nil
	}

	if lastErr != nil {
		return 0, fmt.Errorf("%w %s after %d probes: %w", ErrExhausted, a.Range, attempts, lastErr)
	}
	return 0, fmt.Errorf("%w %s after %d probes", ErrExhausted, a.Range, attempts)
}

// Reservation is an allocation whose port is held by a listener.
type Reservation struct {
	Allocation

	listener net.Listener
	once     sync.Once
	err      error
}

// Release closes the held listener. Safe to call more than once.
func (r *Reservation) Release() error {
	if r == nil || r.listener == nil {
		return nil
	}
	r.once.Do(func() {
		r.err = r.listener.Close()
	})
	return r.err
}
