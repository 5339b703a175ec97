// pkg/clirunner/errors.go
package clirunner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned when a command path does not resolve.
var ErrUnknownCommand = errors.New("unknown command")

// UnknownCommandError wraps ErrUnknownCommand with the full requested path.
type UnknownCommandError struct {
	Path []string
}

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("command %q not found", strings.Join(e.Path, " "))
}

// Unwrap returns the underlying error.
func (e *UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

// Is checks if the error matches ErrUnknownCommand.
func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

// PanicError records a panic raised while a command was running.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("command panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ExitCoder is implemented by errors that carry their own process exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitError is a convenience error for commands that need a specific exit
// code without printing anything extra.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// ExitCode implements ExitCoder.
func (e *ExitError) ExitCode() int { return e.Code }

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps a command error to a process exit code: 0 for nil, the code
// of an ExitCoder anywhere in the chain, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
