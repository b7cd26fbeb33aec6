package monitor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gym-gazebo/gzlaunch/internal/audit"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/port"
)

// readyAfter reports the port free n times, then in use.
func readyAfter(n int32, calls *atomic.Int32) port.Prober {
	return port.ProberFunc(func(ctx context.Context, p int) (bool, error) {
		return calls.Add(1) > n, nil
	})
}

func TestMonitor_New(t *testing.T) {
	m := New(readyAfter(0, &atomic.Int32{}))
	if m.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", m.interval, DefaultInterval)
	}
	if m.auditLog != nil {
		t.Error("auditLog should default to nil")
	}
}

func TestMonitor_Options(t *testing.T) {
	auditLogger := audit.NewLogger(t.TempDir())

	m := New(readyAfter(0, &atomic.Int32{}),
		WithInterval(time.Second),
		WithAuditLogger(auditLogger),
	)

	if m.interval != time.Second {
		t.Errorf("interval = %v, want 1s", m.interval)
	}
	if m.auditLog == nil {
		t.Error("auditLog should be set")
	}
}

func TestMonitor_WaitReady(t *testing.T) {
	var calls atomic.Int32
	dir := t.TempDir()
	m := New(readyAfter(3, &calls), WithInterval(time.Millisecond), WithAuditLogger(audit.NewLogger(dir)))

	if err := m.WaitReady(context.Background(), port.NewAllocation(10002)); err != nil {
		t.Fatalf("WaitReady failed: %v", err)
	}
	if got := calls.Load(); got != 4 {
		t.Errorf("probes = %d, want 4", got)
	}

	events, _ := audit.NewLogger(dir).Events("10002")
	if len(events) != 1 || events[0].Type != audit.EventReady {
		t.Errorf("events = %+v, want one ready event", events)
	}
}

func TestMonitor_WaitReadyTimeout(t *testing.T) {
	m := New(readyAfter(1<<30, &atomic.Int32{}), WithInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.WaitReady(ctx, port.NewAllocation(10002))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestMonitor_ProbeErrorsKeepPolling(t *testing.T) {
	var calls atomic.Int32
	prober := port.ProberFunc(func(ctx context.Context, p int) (bool, error) {
		if calls.Add(1) < 3 {
			return false, &port.ProbeError{Port: p, Err: errors.New("unreachable")}
		}
		return true, nil
	})

	if err := New(prober, WithInterval(time.Millisecond)).WaitReady(context.Background(), port.NewAllocation(10002)); err != nil {
		t.Fatalf("WaitReady failed: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("probes = %d, want 3", got)
	}
}

func TestMonitor_WaitReadyWarnsOnHistoryFailure(t *testing.T) {
	// A regular file where the history directory should be makes writes fail.
	blocked := filepath.Join(t.TempDir(), "history")
	if err := os.WriteFile(blocked, nil, 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logging.Setup(false, false, &buf)
	defer logging.Setup(false, false, nil)

	var calls atomic.Int32
	m := New(readyAfter(0, &calls), WithInterval(time.Millisecond), WithAuditLogger(audit.NewLogger(blocked)))
	if err := m.WaitReady(context.Background(), port.NewAllocation(10002)); err != nil {
		t.Fatalf("WaitReady failed: %v", err)
	}
	if !strings.Contains(buf.String(), "failed to record readiness") {
		t.Errorf("expected a warning, got: %s", buf.String())
	}
}
