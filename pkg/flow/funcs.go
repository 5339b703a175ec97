// pkg/flow/funcs.go
package flow

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cast"
)

// NodeFunc implements a node. It receives the loaded inputs in declaration
// order and returns one value per declared output.
type NodeFunc func(ctx context.Context, inputs []any) ([]any, error)

var (
	funcsMu sync.RWMutex
	funcs   = map[string]NodeFunc{
		"add_column": AddColumn,
		"identity":   Identity,
	}
)

// RegisterFunc makes fn available to pipeline nodes under name, replacing any
// previous registration.
func RegisterFunc(name string, fn NodeFunc) {
	funcsMu.Lock()
	defer funcsMu.Unlock()
	funcs[name] = fn
}

// LookupFunc returns the function registered under name.
func LookupFunc(name string) (NodeFunc, error) {
	funcsMu.RLock()
	defer funcsMu.RUnlock()
	fn, ok := funcs[name]
	if !ok {
		return nil, &NotFoundError{Kind: ErrFuncNotFound, Name: name}
	}
	return fn, nil
}

// Funcs lists registered function names, sorted.
func Funcs() []string {
	funcsMu.RLock()
	defer funcsMu.RUnlock()
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddColumn takes a table with numeric columns a and b plus a number and
// returns the table with column c = a + b + add.
func AddColumn(_ context.Context, inputs []any) ([]any, error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("add_column takes 2 inputs, got %d", len(inputs))
	}
	table, ok := inputs[0].(*Table)
	if !ok {
		return nil, fmt.Errorf("add_column: first input must be a table, got %T", inputs[0])
	}
	add, err := cast.ToFloat64E(inputs[1])
	if err != nil {
		return nil, fmt.Errorf("add_column: %w", err)
	}

	a, err := table.Column("a")
	if err != nil {
		return nil, fmt.Errorf("add_column: %w", err)
	}
	b, err := table.Column("b")
	if err != nil {
		return nil, fmt.Errorf("add_column: %w", err)
	}

	c := make([]string, len(a))
	for i := range a {
		av, err := cast.ToFloat64E(a[i])
		if err != nil {
			return nil, fmt.Errorf("add_column: row %d: %w", i, err)
		}
		bv, err := cast.ToFloat64E(b[i])
		if err != nil {
			return nil, fmt.Errorf("add_column: row %d: %w", i, err)
		}
		c[i] = cast.ToString(av + bv + add)
	}

	out, err := table.With("c", c)
	if err != nil {
		return nil, err
	}
	return []any{out}, nil
}

// Identity passes its inputs through unchanged.
func Identity(_ context.Context, inputs []any) ([]any, error) {
	return inputs, nil
}
