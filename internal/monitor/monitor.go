// Package monitor waits for a launched simulator to become reachable.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/gym-gazebo/gzlaunch/internal/audit"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/port"
)

// DefaultInterval is the time between readiness probes.
const DefaultInterval = 250 * time.Millisecond

// Monitor polls the master port of a simulation instance.
type Monitor struct {
	interval time.Duration
	prober   port.Prober
	auditLog *audit.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the probe interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		m.interval = d
	}
}

// WithAuditLogger sets the audit logger for recording readiness.
func WithAuditLogger(logger *audit.Logger) Option {
	return func(m *Monitor) {
		m.auditLog = logger
	}
}

// New creates a new Monitor.
func New(prober port.Prober, opts ...Option) *Monitor {
	m := &Monitor{
		interval: DefaultInterval,
		prober:   prober,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WaitReady blocks until something listens on the allocated port or ctx
// is done. Probe errors are logged and polling continues.
func (m *Monitor) WaitReady(ctx context.Context, a *port.Allocation) error {
	logging.Debug("waiting for simulator", "port", a.Port, "interval", m.interval)
	start := time.Now()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if m.check(ctx, a.Port) {
			elapsed := time.Since(start)
			logging.Debug("simulator ready", "port", a.Port, "elapsed", elapsed)
			if m.auditLog != nil {
				if err := m.auditLog.LogEvent(audit.EventReady, a.DomainID, fmt.Sprintf("after %s", elapsed.Round(time.Millisecond))); err != nil {
					logging.Warn("failed to record readiness", "error", err)
				}
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("simulator on port %d not ready: %w", a.Port, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (m *Monitor) check(ctx context.Context, p int) bool {
	inUse, err := m.prober.InUse(ctx, p)
	if err != nil {
		logging.Debug("readiness probe failed", "port", p, "error", err)
		return false
	}
	return inUse
}
