// pkg/fixture/fixture.go
// Package fixture builds disposable projects in the Kedro layout for
// integration tests and drives a command tree against them.
//
// A Fixture owns one root directory. Create writes a minimal project there
// and, by default, changes the process working directory into it;
// CreatePipeline adds example pipelines; CLI and RunPipeline invoke commands
// and return their captured outcome; Stop wipes the root and restores the
// working directory. Fixtures are not safe for concurrent use, and because
// Create changes the process working directory, tests using the default
// options must not run in parallel.
package fixture

import (
	"errors"
	"slices"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vulntor/pipetest/pkg/cli"
	"github.com/vulntor/pipetest/pkg/tmpfs"
)

var (
	// ErrNoProject is returned by operations that need a project before
	// Create was called.
	ErrNoProject = errors.New("no project created")

	// ErrRootInUse is returned when another fixture holds the same root.
	ErrRootInUse = errors.New("fixture root in use")

	// ErrInvalidName is returned for project or pipeline names that are not
	// identifiers.
	ErrInvalidName = errors.New("invalid name")
)

// CommandFactory builds a fresh command tree for the project at projectPath.
type CommandFactory func(projectPath string) *cobra.Command

// DefaultCommandFactory builds the bundled flow command tree.
func DefaultCommandFactory(string) *cobra.Command {
	return cli.NewCommand()
}

// Option configures a Fixture.
type Option func(*options)

type options struct {
	factory CommandFactory
	chdir   bool
	logger  zerolog.Logger
}

// WithCLI replaces the command tree driven by CLI and RunPipeline.
func WithCLI(factory CommandFactory) Option {
	return func(o *options) { o.factory = factory }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithoutChdir keeps the process working directory unchanged on Create.
// Commands still find the project through the metadata CLI passes them.
func WithoutChdir() Option {
	return func(o *options) { o.chdir = false }
}

// Fixture manages one project under a root directory.
type Fixture struct {
	fs   *tmpfs.TmpFs
	opts options

	project    string
	pipelines  []string
	dispatcher *dispatcher
	lock       *flock.Flock
}

// New returns a fixture rooted at root. The directory is created if needed;
// its contents are removed by Stop.
func New(root string, opts ...Option) (*Fixture, error) {
	o := options{
		factory: DefaultCommandFactory,
		chdir:   true,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	fs, err := tmpfs.New(root)
	if err != nil {
		return nil, err
	}
	return &Fixture{fs: fs, opts: o}, nil
}

// Path returns the absolute root of the fixture.
func (f *Fixture) Path() string { return f.fs.Root }

// FS returns the scratch filesystem helper for ad-hoc files.
func (f *Fixture) FS() *tmpfs.TmpFs { return f.fs }

// Afero exposes the root as an afero filesystem.
func (f *Fixture) Afero() afero.Fs { return f.fs.Fs() }

// Project returns the current project name, empty before Create and after
// Stop.
func (f *Fixture) Project() string { return f.project }

// Pipelines returns the registered pipeline names in registration order.
func (f *Fixture) Pipelines() []string { return slices.Clone(f.pipelines) }

// Tree renders the directory tree below path.
func (f *Fixture) Tree(path string) (string, error) { return f.fs.Tree(path) }

// Ls lists the entries of path.
func (f *Fixture) Ls(path string) ([]string, error) { return f.fs.Ls(path) }
