// Package logging provides logging utilities for gzlaunch.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
//	logging.Debug("resolved package", "name", pkg, "prefix", prefix)
//	logging.Warn("port in use, retrying", "port", port)
//
// # User Output
//
//	logging.UserInfo("ROS_DOMAIN_ID=%s", alloc.DomainID)
//	logging.UserSuccess("Started %s (pid %d)", name, pid)
//	logging.UserWarning("World %s not found", path)
//	logging.UserError("Failed to launch: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: Stdout (os.Stdout by default)
//   - UserWarning, UserError: Stderr (os.Stderr by default)
package logging
