// Package integration provides a harness for end-to-end launch tests
// that start real child processes.
//
// The harness writes an installed ROS 2 workspace to a temporary
// directory and puts fake gzserver and ros2 executables first on PATH.
// The fakes append their command line and network environment to a log
// file, so tests can assert what each child was started with.
//
// Tests need a POSIX shell and skip when /bin/sh is not available.
//
//	func TestMyLaunch(t *testing.T) {
//	    h := integration.NewHarness(t)
//	    desc, _ := h.Composer(candidates).Compose(ctx, opts)
//	    started, _ := launch.NewService().Start(ctx, desc)
//	    lines := h.WaitForLog(len(started))
//	}
package integration
