package errors

import (
	"errors"
	"fmt"
)

// Exit codes for gzlaunch
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitPortAllocation  = 2
	ExitEnvironment     = 3
	ExitPackageNotFound = 4
	ExitLaunchFailed    = 5
	ExitConfigError     = 6
	ExitWorldNotFound   = 7
	ExitPortInUse       = 8
)

// LaunchError is the base error type for gzlaunch
type LaunchError struct {
	Code    int
	Message string
	Cause   error
}

func (e *LaunchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *LaunchError) ExitCode() int {
	return e.Code
}

// New creates a new LaunchError
func New(code int, message string) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LaunchError
func Wrap(code int, message string, cause error) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// PortAllocationFailed returns an error for port allocation failure
func PortAllocationFailed(cause error) *LaunchError {
	return Wrap(ExitPortAllocation, "failed to allocate exclusive network parameters", cause)
}

// EnvironmentError returns an error for launch environment assembly failures
func EnvironmentError(cause error) *LaunchError {
	return Wrap(ExitEnvironment, "failed to assemble launch environment", cause)
}

// PackageNotFound returns an error for a package missing from the ament index
func PackageNotFound(name string, cause error) *LaunchError {
	return Wrap(ExitPackageNotFound, fmt.Sprintf("package not found: %s", name), cause)
}

// LaunchFailed returns an error for a process that could not be started
func LaunchFailed(process string, cause error) *LaunchError {
	return Wrap(ExitLaunchFailed, fmt.Sprintf("failed to start %s", process), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *LaunchError {
	return Wrap(ExitConfigError, message, cause)
}

// WorldNotFound returns an error for a missing world description file
func WorldNotFound(path string) *LaunchError {
	return New(ExitWorldNotFound, fmt.Sprintf("world file not found: %s", path))
}

// PortInUse returns an error reporting that a probed port is taken
func PortInUse(port int) *LaunchError {
	return New(ExitPortInUse, fmt.Sprintf("port %d is in use", port))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *LaunchError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var launchErr *LaunchError
	if errors.As(err, &launchErr) {
		return launchErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
