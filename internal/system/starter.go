package system

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/gym-gazebo/gzlaunch/internal/logging"
)

// osStarter implements ProcessStarter using os/exec.
type osStarter struct{}

func (s *osStarter) Start(ctx context.Context, spec StartSpec) (int, error) {
	if len(spec.Argv) == 0 {
		return 0, errors.New("empty command line")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// exec.Command, not CommandContext: the child must outlive ctx.
	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Env = spec.Env
	cmd.Dir = spec.Dir
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = spec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		logging.ForProcess(spec.Name).Debug("process exited", "pid", pid, "error", err)
	}()

	return pid, nil
}
