package launch

import (
	"github.com/gym-gazebo/gzlaunch/internal/env"
	"github.com/gym-gazebo/gzlaunch/internal/port"
)

// Kind tells how a process is started.
type Kind string

const (
	// KindExecute runs Cmd as given.
	KindExecute Kind = "execute"
	// KindNode runs Executable from Package through the node runner.
	KindNode Kind = "node"
)

// OutputScreen sends process output to the launcher's stdout/stderr.
const OutputScreen = "screen"

// Process describes one child process.
type Process struct {
	Name       string
	Kind       Kind
	Package    string
	Executable string
	Cmd        []string
	Args       []string
	Env        *env.Environment
	Output     string
}

// Command returns the argv for the process. Nodes run as
// runner + package + executable + args, e.g. "ros2 run pkg exe".
func (p Process) Command(runner []string) []string {
	if p.Kind == KindExecute {
		return append([]string(nil), p.Cmd...)
	}
	argv := make([]string, 0, len(runner)+2+len(p.Args))
	argv = append(argv, runner...)
	argv = append(argv, p.Package, p.Executable)
	return append(argv, p.Args...)
}

// Description is a composed launch: network parameters, environment and
// the ordered process list.
type Description struct {
	World      string
	Allocation *port.Allocation
	Env        *env.Environment
	NodeRunner []string
	Processes  []Process

	// Reservation is set when the port is held until the simulator starts.
	Reservation *port.Reservation
}

// Simulator returns the first execute process, or nil.
func (d *Description) Simulator() *Process {
	for i := range d.Processes {
		if d.Processes[i].Kind == KindExecute {
			return &d.Processes[i]
		}
	}
	return nil
}

// Release frees a held reservation, if any.
func (d *Description) Release() error {
	if d == nil {
		return nil
	}
	return d.Reservation.Release()
}
