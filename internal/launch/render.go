package launch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/gym-gazebo/gzlaunch/internal/port"
)

// Output formats for Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type processView struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    Kind     `json:"kind" yaml:"kind"`
	Package string   `json:"package,omitempty" yaml:"package,omitempty"`
	Command []string `json:"command" yaml:"command"`
	Output  string   `json:"output" yaml:"output"`
}

type descriptionView struct {
	World     string            `json:"world" yaml:"world"`
	Network   *port.Allocation  `json:"network" yaml:"network"`
	Reserved  bool              `json:"reserved" yaml:"reserved"`
	Env       map[string]string `json:"env" yaml:"env"`
	Processes []processView     `json:"processes" yaml:"processes"`
}

func (d *Description) view() descriptionView {
	v := descriptionView{
		World:    d.World,
		Network:  d.Allocation,
		Reserved: d.Reservation != nil,
	}
	if d.Env != nil {
		v.Env = d.Env.Map()
	}
	for _, p := range d.Processes {
		v.Processes = append(v.Processes, processView{
			Name:    p.Name,
			Kind:    p.Kind,
			Package: p.Package,
			Command: p.Command(d.NodeRunner),
			Output:  p.Output,
		})
	}
	return v
}

// Render writes the description in the given format.
func Render(w io.Writer, d *Description, format string) error {
	switch format {
	case FormatText, "":
		return renderText(w, d)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d.view())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.view()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func renderText(w io.Writer, d *Description) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "World: %s\n", d.World)
	if d.Allocation != nil {
		fmt.Fprintf(&sb, "%s=%s\n", DomainIDVar, d.Allocation.DomainID)
		fmt.Fprintf(&sb, "%s=%s\n", MasterURIVar, d.Allocation.MasterURI)
	}
	sb.WriteString("\nProcesses:\n")
	for i, p := range d.Processes {
		fmt.Fprintf(&sb, "  %d. %s [%s]\n", i+1, p.Name, p.Kind)
		fmt.Fprintf(&sb, "     %s\n", shellquote.Join(p.Command(d.NodeRunner)...))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// ExportLines renders the network parameters as shell export statements.
func ExportLines(a *port.Allocation) []string {
	return []string{
		"export " + shellquote.Join(DomainIDVar+"="+a.DomainID),
		"export " + shellquote.Join(MasterURIVar+"="+a.MasterURI),
	}
}
