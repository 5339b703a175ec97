// pkg/cli/root.go
// Package cli builds the flow command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/appctx"
	"github.com/vulntor/pipetest/pkg/cli/internal/format"
	"github.com/vulntor/pipetest/pkg/clirunner"
	"github.com/vulntor/pipetest/pkg/config"
	"github.com/vulntor/pipetest/pkg/logging"
	"github.com/vulntor/pipetest/pkg/paths"
	"github.com/vulntor/pipetest/pkg/project"
)

const cliExecutable = "flow"

// NewCommand constructs the top-level flow command. Every invocation loads
// configuration, attaches a console logger writing to the command's stderr
// and resolves the project, either from metadata already on the context or
// from the manifest in the working directory.
func NewCommand() *cobra.Command {
	var (
		configFile string
		outputMode string
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "flow runs data pipelines declared in a project",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := format.ValidateMode(outputMode); err != nil {
				return err
			}

			if configFile == "" {
				configFile = paths.ConfigFile()
			}
			mgr := config.NewManager()
			if err := mgr.Load(cmd.Flags(), configFile); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			ctx := appctx.WithConfig(cmd.Context(), mgr)

			logger := newLogger(cmd, mgr.Get().Log)
			ctx = logger.WithContext(ctx)

			if _, ok := project.MetadataFromContext(ctx); !ok {
				meta, err := project.LoadMetadata(".")
				switch {
				case err == nil:
					ctx = project.WithMetadata(ctx, meta)
				case errors.Is(err, project.ErrNoManifest):
					logger.Debug().Msg("no project in working directory")
				default:
					return err
				}
			}

			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (default $XDG_CONFIG_HOME/flow/config.yaml)")
	cmd.PersistentFlags().StringVarP(&outputMode, "output", "o", string(format.ModeTable), "Output format (table, json)")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress summary lines")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddGroup(&cobra.Group{ID: "project", Title: "Project Commands"})
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands"})

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newRegistryCommand())
	cmd.AddCommand(newCatalogCommand())
	cmd.AddCommand(newInfoCommand())
	cmd.AddCommand(NewVersionCommand(cliExecutable))

	return cmd
}

// Execute runs flow with args the way the binary does: a failure is printed
// through the output formatter (JSON on stdout with -o json) instead of by
// cobra. It returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewCommand()
	root.SilenceErrors = true
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	if cmd == nil {
		cmd = root
	}
	_ = format.FromCommand(cmd).PrintError(err)
	return clirunner.ExitCode(err)
}

func newLogger(cmd *cobra.Command, cfg config.LogConfig) zerolog.Logger {
	level := logging.ParseLevel(cfg.Level)
	if cfg.Format == "json" {
		return logging.NewLoggerWithWriter(cliExecutable, level, cmd.ErrOrStderr())
	}
	return logging.NewConsoleLogger(cmd.ErrOrStderr(), level)
}

// requireProject returns the project bound to the command context.
func requireProject(cmd *cobra.Command) (*project.Metadata, error) {
	meta, ok := project.MetadataFromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("%w: %s must be run inside a project directory", project.ErrNoManifest, cmd.CommandPath())
	}
	return meta, nil
}
