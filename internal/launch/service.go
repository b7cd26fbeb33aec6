package launch

import (
	"context"
	"io"
	"os"

	"github.com/gym-gazebo/gzlaunch/internal/errors"
	"github.com/gym-gazebo/gzlaunch/internal/logging"
	"github.com/gym-gazebo/gzlaunch/internal/system"
)

// Started records a process handed to the starter.
type Started struct {
	Name string
	PID  int
	Argv []string
}

// Service starts the processes of a Description.
type Service struct {
	Starter system.ProcessStarter

	// Stdout and Stderr receive "screen" output; nil uses the
	// launcher's own.
	Stdout io.Writer
	Stderr io.Writer
}

// NewService creates a Service backed by the OS process starter.
func NewService() *Service {
	return &Service{Starter: system.DefaultStarter()}
}

// Start launches every process in order and returns without waiting for
// any of them. A held reservation is released right before the simulator
// starts, and in any case before Start returns. On failure the processes
// already started are returned along with the error; they keep running.
func (s *Service) Start(ctx context.Context, desc *Description) ([]Started, error) {
	defer desc.Release()

	starter := s.Starter
	if starter == nil {
		starter = system.DefaultStarter()
	}

	var started []Started
	for _, p := range desc.Processes {
		if p.Kind == KindExecute {
			if err := desc.Release(); err != nil {
				logging.Warn("failed to release port reservation", "error", err)
			}
		}

		spec := system.StartSpec{
			Name: p.Name,
			Argv: p.Command(desc.NodeRunner),
		}
		if p.Env != nil {
			spec.Env = p.Env.Slice()
		}
		if p.Output == OutputScreen {
			spec.Stdout = s.writer(s.Stdout, os.Stdout)
			spec.Stderr = s.writer(s.Stderr, os.Stderr)
		} else {
			spec.Stdout = io.Discard
			spec.Stderr = io.Discard
		}

		pid, err := starter.Start(ctx, spec)
		if err != nil {
			logging.Error("failed to start process", "name", p.Name, "error", err)
			return started, errors.LaunchFailed(p.Name, err)
		}

		logging.Debug("started process", "name", p.Name, "pid", pid, "argv", spec.Argv)
		started = append(started, Started{Name: p.Name, PID: pid, Argv: spec.Argv})
	}

	return started, nil
}

func (s *Service) writer(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
