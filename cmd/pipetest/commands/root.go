// cmd/pipetest/commands/root.go
package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/logging"
)

const cliExecutable = "pipetest"

// NewCommand constructs the top-level pipetest command.
func NewCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "pipetest builds disposable pipeline projects for tests",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetLogWriter(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				NoColor:    true,
				PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
			})
			if err := logging.ConfigureGlobalLogging(logLevel); err != nil {
				return err
			}
			logger := logging.NewLogger(cliExecutable, logging.ParseLevel(logLevel))
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", zerolog.LevelInfoValue, "Log level (debug, info, warn, error)")

	cmd.AddCommand(newScaffoldCommand())

	return cmd
}
