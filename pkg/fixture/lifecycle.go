// pkg/fixture/lifecycle.go
package fixture

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"github.com/vulntor/pipetest/pkg/project"
	"github.com/vulntor/pipetest/pkg/version"
)

// Create writes a minimal project named name into the root and makes the
// root the working directory. An existing project is overwritten. name
// becomes the Python package name, so it must be an identifier
// ([A-Za-z_][A-Za-z0-9_]*); anything else fails with ErrInvalidName before
// any file is written.
func (f *Fixture) Create(name string) (*Fixture, error) {
	if !project.IsIdentifier(name) {
		return nil, fmt.Errorf("%w: project %q", ErrInvalidName, name)
	}
	if err := f.acquire(); err != nil {
		return nil, err
	}

	f.project = name
	if err := f.writeLayout(); err != nil {
		return nil, fmt.Errorf("create project %s: %w", name, err)
	}

	if f.opts.chdir {
		if err := f.fs.TmpCwd(); err != nil {
			return nil, err
		}
	}

	f.opts.logger.Debug().
		Str("project", name).
		Str("root", f.fs.Root).
		Bool("chdir", f.opts.chdir).
		Msg("project created")
	return f, nil
}

func (f *Fixture) writeLayout() error {
	for _, dir := range []string{project.SourceRoot, project.ConfLocal, project.ConfBase, project.DataDir} {
		if _, err := f.fs.Mkdir(dir); err != nil {
			return err
		}
	}

	if _, err := f.fs.Write(project.ManifestFile, project.ManifestLines(f.project, version.Framework())...); err != nil {
		return err
	}
	if _, err := f.fs.Write(project.PackageFile(f.project, project.SettingsFile), ""); err != nil {
		return err
	}
	for _, name := range []string{project.InitFile, project.MainFile, project.RegistryFile} {
		if _, err := f.fs.Touch(project.PackageFile(f.project, name)); err != nil {
			return err
		}
	}
	return nil
}

// Stop removes everything below the root, restores the working directory
// and resets the fixture so it can be used again. It is safe to call without
// a project and more than once.
func (f *Fixture) Stop() error {
	var errs []error
	if f.fs.InTmpCwd() {
		if err := f.fs.Cwd(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := f.fs.Clean(); err != nil {
		errs = append(errs, err)
	}
	if err := f.release(); err != nil {
		errs = append(errs, err)
	}

	if f.project != "" {
		f.opts.logger.Debug().Str("project", f.project).Msg("project stopped")
	}
	f.project = ""
	f.pipelines = nil
	f.dispatcher = nil
	return errors.Join(errs...)
}

// Detach releases the root lock and resets the fixture like Stop, but keeps
// the files and the current working directory.
func (f *Fixture) Detach() error {
	err := f.release()
	f.project = ""
	f.pipelines = nil
	f.dispatcher = nil
	return err
}

// Use creates project name, runs fn and always stops the fixture afterwards.
func (f *Fixture) Use(name string, fn func(*Fixture) error) (err error) {
	if _, err := f.Create(name); err != nil {
		return errors.Join(err, f.Stop())
	}
	defer func() { err = errors.Join(err, f.Stop()) }()
	return fn(f)
}

func (f *Fixture) lockPath() string {
	return f.fs.Root + ".lock"
}

// acquire takes the root lock unless this fixture already holds it.
func (f *Fixture) acquire() error {
	if f.lock != nil {
		return nil
	}
	lock := flock.New(f.lockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", f.fs.Root, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrRootInUse, f.fs.Root)
	}
	f.lock = lock
	return nil
}

func (f *Fixture) release() error {
	if f.lock == nil {
		return nil
	}
	lock := f.lock
	f.lock = nil
	if err := lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", f.fs.Root, err)
	}
	if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
