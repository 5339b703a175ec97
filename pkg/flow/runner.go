// pkg/flow/runner.go
package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Runner executes a pipeline against a catalog.
type Runner interface {
	Run(ctx context.Context, p *Pipeline, catalog *Catalog) error
}

// NewRunner returns the runner registered under name.
func NewRunner(name string, logger zerolog.Logger) (Runner, error) {
	switch name {
	case "", "sequential", "SequentialRunner":
		return &SequentialRunner{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown runner %q", name)
	}
}

// SequentialRunner runs nodes one at a time in pipeline order.
type SequentialRunner struct {
	logger zerolog.Logger
}

// Run checks that every free input exists, then runs each node.
func (r *SequentialRunner) Run(ctx context.Context, p *Pipeline, catalog *Catalog) error {
	var missing []string
	for _, in := range p.Inputs() {
		if !catalog.Exists(in) {
			missing = append(missing, in)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("pipeline %s: %w: %s", p.Name, ErrDataSetNotFound, strings.Join(missing, ", "))
	}

	for i, n := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runNode(ctx, n, catalog); err != nil {
			return err
		}
		r.logger.Info().Msgf("Completed %d out of %d tasks", i+1, len(p.Nodes))
	}
	return nil
}

func (r *SequentialRunner) runNode(ctx context.Context, n Node, catalog *Catalog) error {
	fn, err := LookupFunc(n.Func)
	if err != nil {
		return &NodeError{Node: n.Name, Err: err}
	}

	inputs := make([]any, 0, len(n.Inputs))
	for _, name := range n.Inputs {
		ds, err := catalog.Get(name)
		if err != nil {
			return &NodeError{Node: n.Name, Err: err}
		}
		r.logger.Info().Msgf("Loading data from '%s' (%s)...", name, ds.Describe())
		data, err := catalog.Load(name)
		if err != nil {
			return &NodeError{Node: n.Name, Err: err}
		}
		inputs = append(inputs, data)
	}

	r.logger.Info().Msgf("Running node: %s: %s", n.Name, n)
	outputs, err := fn(ctx, inputs)
	if err != nil {
		return &NodeError{Node: n.Name, Err: err}
	}
	if len(outputs) != len(n.Outputs) {
		return &NodeError{Node: n.Name, Err: fmt.Errorf("returned %d outputs, declared %d", len(outputs), len(n.Outputs))}
	}

	for i, name := range n.Outputs {
		ds, err := catalog.Get(name)
		if err != nil {
			return &NodeError{Node: n.Name, Err: err}
		}
		r.logger.Info().Msgf("Saving data to '%s' (%s)...", name, ds.Describe())
		if err := catalog.Save(name, outputs[i]); err != nil {
			return &NodeError{Node: n.Name, Err: err}
		}
	}
	return nil
}
