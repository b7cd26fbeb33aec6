package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
		hidden  bool
	}{
		{"info", false, func() { Info("exclusive network parameters", "ROS_DOMAIN_ID", "10002") }, "ROS_DOMAIN_ID=10002", false},
		{"warn", false, func() { Warn("port in use, retrying", "port", 10000) }, "port=10000", false},
		{"error", false, func() { Error("failed to start process", "name", "gzserver") }, "name=gzserver", false},
		{"debug hidden", false, func() { Debug("probing port", "port", 10001) }, "probing port", true},
		{"debug verbose", true, func() { Debug("probing port", "port", 10001) }, "probing port", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Setup(tt.verbose, false, &buf)
			if Verbose != tt.verbose {
				t.Errorf("Verbose = %v, want %v", Verbose, tt.verbose)
			}

			tt.log()

			got := strings.Contains(buf.String(), tt.want)
			if got == tt.hidden {
				t.Errorf("output %q: contains %q = %v, want %v", buf.String(), tt.want, got, !tt.hidden)
			}
		})
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("exclusive network parameters", "GAZEBO_MASTER_URI", "http://localhost:10002")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "exclusive network parameters" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["GAZEBO_MASTER_URI"] != "http://localhost:10002" {
		t.Errorf("GAZEBO_MASTER_URI = %v", record["GAZEBO_MASTER_URI"])
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("process", "spawn_entity.py")
	if logger == nil {
		t.Fatal("With() returned nil")
	}
	logger.Info("started process", "pid", 1002)

	output := buf.String()
	if !strings.Contains(output, "process=spawn_entity.py") || !strings.Contains(output, "pid=1002") {
		t.Errorf("missing attributes in output: %s", output)
	}
}

func TestForProcess(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)
	defer Setup(false, false, nil)

	ForProcess("gzserver").Debug("process exited", "pid", 1001)

	if !strings.Contains(buf.String(), "process=gzserver") {
		t.Errorf("missing process attribute: %s", buf.String())
	}
}

func TestSetup_NilWriter(t *testing.T) {
	// Should not panic with nil writer
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	defer func() { Stdout, Stderr = oldOut, oldErr }()

	UserInfo("ROS_DOMAIN_ID=%s", "10002")
	UserSuccess("started %s", "gzserver")
	UserWarning("port %d busy", 10000)
	UserError("failed: %v", "boom")

	if got := out.String(); got != "ℹ ROS_DOMAIN_ID=10002\n✓ started gzserver\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "⚠ port 10000 busy\n✗ failed: boom\n" {
		t.Errorf("stderr = %q", got)
	}
}
