// pkg/cli/run.go
package cli

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/appctx"
	"github.com/vulntor/pipetest/pkg/clirunner"
	"github.com/vulntor/pipetest/pkg/config"
	"github.com/vulntor/pipetest/pkg/flow"
	"github.com/vulntor/pipetest/pkg/project"
	"github.com/vulntor/pipetest/pkg/version"
)

// Exit codes of flow run besides 0 and the generic 1.
const (
	// ExitNotFound reports a missing project, pipeline or input dataset.
	ExitNotFound = 2
	// ExitIncompatible reports a project built for another framework version.
	ExitIncompatible = 3
)

// runError attaches the run exit code matching err.
func runError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, project.ErrIncompatibleVersion):
		return &clirunner.ExitError{Code: ExitIncompatible, Err: err}
	case errors.Is(err, project.ErrNoManifest),
		errors.Is(err, flow.ErrPipelineNotFound),
		errors.Is(err, flow.ErrDataSetNotFound):
		return &clirunner.ExitError{Code: ExitNotFound, Err: err}
	default:
		return err
	}
}

func newRunCommand() *cobra.Command {
	var (
		pipeline string
		runner   string
		params   string
	)

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "project",
		Short:   "Run a registered pipeline",
		Example: `  # Run the default pipeline
  flow run

  # Run a named pipeline with a parameter override
  flow run --pipeline my_pipeline --params "my_pipeline-param=2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := requireProject(cmd)
			if err != nil {
				return runError(err)
			}
			if err := project.CheckCompatible(meta.ProjectVersion, version.Framework()); err != nil {
				return runError(err)
			}

			if mgr, ok := appctx.Config(cmd.Context()); ok {
				cfg := mgr.Get()
				if !cmd.Flags().Changed("pipeline") && cfg.Run.Pipeline != "" {
					pipeline = cfg.Run.Pipeline
				}
				if !cmd.Flags().Changed("runner") && cfg.Run.Runner != "" {
					runner = cfg.Run.Runner
				}
			}

			extra, err := flow.ParseParams(params)
			if err != nil {
				return err
			}

			logger := zerolog.Ctx(cmd.Context())
			logger.Info().Msgf("Running pipeline '%s' of project %s", pipeline, meta.ProjectName)

			session := flow.NewSession(meta, *logger)
			return runError(session.Run(cmd.Context(), flow.RunOptions{
				Pipeline: pipeline,
				Runner:   runner,
				Params:   extra,
			}))
		},
	}

	cmd.Flags().StringVarP(&pipeline, "pipeline", "p", config.DefaultPipeline, "Name of the registered pipeline to run")
	cmd.Flags().StringVarP(&runner, "runner", "r", "sequential", "Runner used to execute nodes")
	cmd.Flags().StringVar(&params, "params", "", "Parameter overrides as key=value pairs separated by commas")

	return cmd
}
