package errors

import (
	"errors"
	"io/fs"
)

// Process exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid input or configuration.
	ExitValidationError = 2

	// ExitEnvironmentError indicates a required tool (package manager) is missing.
	ExitEnvironmentError = 3

	// ExitPermissionDenied indicates a filesystem permission failure.
	ExitPermissionDenied = 4

	// ExitNotFound indicates a file or directory was not found.
	ExitNotFound = 5

	// ExitInstallError indicates dependency installation failed.
	ExitInstallError = 6
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is set when the command layer already showed the error to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with the exit code derived from it.
func NewExitError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitCodeFromError(err)}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrEnvironment):
		return ExitEnvironmentError
	case errors.Is(err, ErrPermission), errors.Is(err, fs.ErrPermission):
		return ExitPermissionDenied
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrInstall):
		return ExitInstallError
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitEnvironmentError:
		return "Environment Error"
	case ExitPermissionDenied:
		return "Permission Denied"
	case ExitNotFound:
		return "Not Found"
	case ExitInstallError:
		return "Install Error"
	default:
		return "Unknown"
	}
}
