// pkg/fixture/cli.go
package fixture

import (
	"context"
	"errors"
	"fmt"

	"github.com/vulntor/pipetest/pkg/clirunner"
	"github.com/vulntor/pipetest/pkg/config"
	"github.com/vulntor/pipetest/pkg/project"
)

// dispatcher binds a command factory to the fixture root. Project metadata
// is loaded on first successful read and kept until Stop.
type dispatcher struct {
	factory CommandFactory
	root    string
	meta    *project.Metadata
	runner  clirunner.Runner
}

func (d *dispatcher) metadata() (*project.Metadata, error) {
	if d.meta != nil {
		return d.meta, nil
	}
	meta, err := project.LoadMetadata(d.root)
	if err != nil {
		return nil, err
	}
	d.meta = meta
	return meta, nil
}

func (f *Fixture) getDispatcher() *dispatcher {
	if f.dispatcher == nil {
		f.dispatcher = &dispatcher{factory: f.opts.factory, root: f.fs.Root}
	}
	return f.dispatcher
}

// CLI resolves path in a fresh command tree and invokes it with args. An
// unresolvable path returns an *clirunner.UnknownCommandError before
// anything runs. Everything that happens inside the command, including
// panics, is reported through the Result.
func (f *Fixture) CLI(path []string, args []string) (*clirunner.Result, error) {
	d := f.getDispatcher()

	cmd, err := clirunner.Find(d.factory(d.root), path)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	meta, err := d.metadata()
	switch {
	case err == nil:
		ctx = project.WithMetadata(ctx, meta)
	case errors.Is(err, project.ErrNoManifest):
	default:
		return nil, fmt.Errorf("load project metadata: %w", err)
	}

	res := d.runner.Invoke(ctx, cmd, args)
	f.opts.logger.Debug().
		Strs("command", path).
		Strs("args", args).
		Int("exit_code", res.ExitCode).
		Msg("command invoked")
	return res, nil
}

// RunPipeline runs pipeline through command, appending "--pipeline <name>"
// to args. An empty name means the default pipeline and an empty command
// means "run". Registration is not checked; the command reports unknown
// pipelines itself.
func (f *Fixture) RunPipeline(name string, command []string, args ...string) (*clirunner.Result, error) {
	if name == "" {
		name = config.DefaultPipeline
	}
	if len(command) == 0 {
		command = []string{"run"}
	}
	full := append(append([]string(nil), args...), "--pipeline", name)
	return f.CLI(command, full)
}
