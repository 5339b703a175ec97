// pkg/flow/session.go
// Package flow is a small pipeline framework operating on projects in the
// Kedro layout: a TOML manifest, a pipeline registry, pipeline modules that
// declare nodes, and YAML catalog and parameters under conf/.
package flow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vulntor/pipetest/pkg/project"
)

// CompletedMessage is logged after a pipeline finished successfully.
const CompletedMessage = "Pipeline execution completed."

// Session binds a project to one run.
type Session struct {
	ID       string
	Metadata *project.Metadata
	logger   zerolog.Logger
}

// RunOptions selects what a session runs.
type RunOptions struct {
	Pipeline string
	Runner   string
	Params   map[string]any
}

// NewSession opens a session on the project described by meta.
func NewSession(meta *project.Metadata, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:       id,
		Metadata: meta,
		logger:   logger.With().Str("session", id).Logger(),
	}
}

// Run loads the project configuration, resolves the pipeline and runs it.
func (s *Session) Run(ctx context.Context, opts RunOptions) error {
	reg, err := LoadRegistry(s.Metadata)
	if err != nil {
		return err
	}
	p, err := reg.Get(opts.Pipeline)
	if err != nil {
		return err
	}

	cfg, err := LoadProjectConfig(s.Metadata.ProjectPath, opts.Params)
	if err != nil {
		return err
	}
	catalog, err := NewCatalog(s.Metadata.ProjectPath, cfg)
	if err != nil {
		return err
	}

	runner, err := NewRunner(opts.Runner, s.logger)
	if err != nil {
		return err
	}

	s.logger.Debug().Str("pipeline", p.Name).Int("nodes", len(p.Nodes)).Msg("run started")
	if err := runner.Run(ctx, p, catalog); err != nil {
		return fmt.Errorf("run pipeline %s: %w", p.Name, err)
	}
	s.logger.Info().Msg(CompletedMessage)
	return nil
}
