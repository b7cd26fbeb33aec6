// Package errors provides typed errors with exit codes for gzlaunch.
//
// # Error Types
//
// LaunchError is the base error type that wraps an error with an exit code:
//
//	type LaunchError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess         = 0 // Success
//	ExitGeneralError    = 1 // General/unknown errors
//	ExitPortAllocation  = 2 // No exclusive port could be found
//	ExitEnvironment     = 3 // Launch environment could not be assembled
//	ExitPackageNotFound = 4 // Package missing from the ament index
//	ExitLaunchFailed    = 5 // A child process failed to start
//	ExitConfigError     = 6 // Configuration error
//	ExitWorldNotFound   = 7 // World description file missing
//	ExitPortInUse       = 8 // Probed port is in use (probe command)
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
