package port

import (
	"fmt"
	"strconv"
)

// Policy range for exclusive simulator ports.
const (
	DefaultFrom = 10000
	DefaultTo   = 15000
)

// Range is an inclusive port range.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DefaultRange returns the 10000-15000 policy range.
func DefaultRange() Range {
	return Range{From: DefaultFrom, To: DefaultTo}
}

// Validate checks that the range is non-empty and within the TCP port space.
func (r Range) Validate() error {
	if r.From < 1 || r.To > 65535 {
		return fmt.Errorf("port range %s outside 1-65535", r)
	}
	if r.From > r.To {
		return fmt.Errorf("port range %s is empty", r)
	}
	return nil
}

// Contains reports whether p lies in the range.
func (r Range) Contains(p int) bool {
	return p >= r.From && p <= r.To
}

// Size returns the number of ports in the range, 0 if empty.
func (r Range) Size() int {
	if r.From > r.To {
		return 0
	}
	return r.To - r.From + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// Allocation holds the network parameters derived from one exclusive port.
type Allocation struct {
	Port      int    `json:"port" yaml:"port"`
	DomainID  string `json:"domainId" yaml:"domainId"`
	MasterURI string `json:"masterUri" yaml:"masterUri"`
}

// NewAllocation derives the domain id and master URI for port.
func NewAllocation(port int) *Allocation {
	id := strconv.Itoa(port)
	return &Allocation{
		Port:      port,
		DomainID:  id,
		MasterURI: "http://localhost:" + id,
	}
}
