// pkg/flow/errors.go
package flow

import (
	"errors"
	"fmt"
)

// Common errors returned by flow operations.
var (
	// ErrPipelineNotFound is returned when a pipeline is not registered.
	ErrPipelineNotFound = errors.New("pipeline not found")

	// ErrDataSetNotFound is returned when a dataset cannot be loaded.
	ErrDataSetNotFound = errors.New("dataset not found")

	// ErrFuncNotFound is returned when a node references an unknown function.
	ErrFuncNotFound = errors.New("node function not found")

	// ErrInvalidPipeline is returned for pipeline sources that cannot be
	// parsed or ordered.
	ErrInvalidPipeline = errors.New("invalid pipeline")
)

// NotFoundError wraps one of the not-found sentinels with the missing name.
type NotFoundError struct {
	Kind error
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Name)
}

// Unwrap returns the underlying sentinel.
func (e *NotFoundError) Unwrap() error {
	return e.Kind
}

// NodeError reports a failure inside a node.
type NodeError struct {
	Node string
	Err  error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s failed: %v", e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error {
	return e.Err
}
