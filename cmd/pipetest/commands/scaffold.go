// cmd/pipetest/commands/scaffold.go
package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/fixture"
)

func newScaffoldCommand() *cobra.Command {
	var (
		dir       string
		pipelines []string
	)

	cmd := &cobra.Command{
		Use:   "scaffold NAME",
		Short: "Write a fixture project to a directory and print its tree",
		Long: `Write the same project a test would get from fixture.Create, plus any
requested pipelines, and leave it on disk. The working directory is not
changed and nothing is cleaned up.`,
		Example: `  # Project with two example pipelines under ./demo
  pipetest scaffold my_project --dir demo --pipeline p1 --pipeline p2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			logger := zerolog.Ctx(cmd.Context())

			f, err := fixture.New(dir, fixture.WithoutChdir(), fixture.WithLogger(*logger))
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, f.Detach()) }()

			if _, err := f.Create(args[0]); err != nil {
				return err
			}
			for _, p := range pipelines {
				if err := f.CreatePipeline(p); err != nil {
					return err
				}
			}

			tree, err := f.Tree(".")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Path())
			fmt.Fprintln(cmd.OutOrStdout(), tree)
			logger.Info().Str("project", args[0]).Int("pipelines", len(f.Pipelines())).Msg("project scaffolded")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write the project into")
	cmd.Flags().StringSliceVarP(&pipelines, "pipeline", "p", nil, "Example pipeline to add (repeatable)")

	return cmd
}
