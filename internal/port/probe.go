package port

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
	"time"
)

const (
	DefaultProbeHost    = "localhost"
	DefaultProbeTimeout = 500 * time.Millisecond
)

// Prober reports whether something is listening on a local port.
type Prober interface {
	InUse(ctx context.Context, port int) (bool, error)
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, port int) (bool, error)

func (f ProberFunc) InUse(ctx context.Context, port int) (bool, error) {
	return f(ctx, port)
}

// ProbeError is returned when a probe could neither connect nor get a
// refusal, so the port state is unknown.
type ProbeError struct {
	Port int
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe of port %d failed: %v", e.Port, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// TCPProber probes ports with a transient TCP connect.
type TCPProber struct {
	Host    string
	Timeout time.Duration
}

// InUse connects to Host:port. A completed connect means in use, a refused
// connect means free; anything else is a *ProbeError.
func (p *TCPProber) InUse(ctx context.Context, port int) (bool, error) {
	host := p.Host
	if host == "" {
		host = DefaultProbeHost
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err == nil {
		conn.Close()
		return true, nil
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return false, nil
	}
	return false, &ProbeError{Port: port, Err: err}
}

// CheckPortInUse reports whether a service is listening on localhost:port.
// Probe errors read as "not in use".
func CheckPortInUse(port int) bool {
	inUse, _ := (&TCPProber{}).InUse(context.Background(), port)
	return inUse
}
