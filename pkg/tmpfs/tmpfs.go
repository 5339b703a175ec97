// pkg/tmpfs/tmpfs.go
// Package tmpfs manages a scratch directory tree rooted at a single path.
// All paths passed to TmpFs methods are relative to that root.
package tmpfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ErrNoSavedCwd is returned by Cwd when TmpCwd was never called.
var ErrNoSavedCwd = errors.New("no working directory saved")

// TmpFs creates, reads and removes files below Root. It also remembers the
// working directory in effect before TmpCwd so Cwd can restore it.
type TmpFs struct {
	Root string

	fs      afero.Fs
	prevCwd string
}

// New prepares root (creating it if needed) and returns a TmpFs backed by
// the OS filesystem.
func New(root string) (*TmpFs, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o750); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	return NewWithFs(absRoot, afero.NewBasePathFs(afero.NewOsFs(), absRoot)), nil
}

// NewWithFs wraps an existing afero filesystem whose "/" corresponds to root.
// TmpCwd and Cwd still act on the real process working directory.
func NewWithFs(root string, fs afero.Fs) *TmpFs {
	return &TmpFs{Root: root, fs: fs}
}

// Fs exposes the underlying afero filesystem.
func (t *TmpFs) Fs() afero.Fs { return t.fs }

// Abs returns the absolute location of a root-relative path.
func (t *TmpFs) Abs(path string) string {
	return filepath.Join(t.Root, filepath.FromSlash(path))
}

func clean(path string) string {
	return filepath.Clean(filepath.FromSlash(path))
}

// Mkdir creates path and any missing parents.
func (t *TmpFs) Mkdir(path string) (string, error) {
	if err := t.fs.MkdirAll(clean(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", path, err)
	}
	return t.Abs(path), nil
}

// Touch creates an empty file, creating parent directories as needed. An
// existing file is left untouched.
func (t *TmpFs) Touch(path string) (string, error) {
	p := clean(path)
	if err := t.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("touch %s: %w", path, err)
	}
	f, err := t.fs.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("touch %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("touch %s: %w", path, err)
	}
	return t.Abs(path), nil
}

// Write joins lines with newlines, appends a trailing newline and writes the
// result to path, replacing any previous content.
func (t *TmpFs) Write(path string, lines ...string) (string, error) {
	return t.WriteBytes(path, []byte(strings.Join(lines, "\n")+"\n"))
}

// WriteBytes writes data to path verbatim.
func (t *TmpFs) WriteBytes(path string, data []byte) (string, error) {
	p := clean(path)
	if err := t.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := afero.WriteFile(t.fs, p, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return t.Abs(path), nil
}

// Read returns the content of path.
func (t *TmpFs) Read(path string) (string, error) {
	data, err := afero.ReadFile(t.fs, clean(path))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Exists reports whether path exists.
func (t *TmpFs) Exists(path string) bool {
	ok, err := afero.Exists(t.fs, clean(path))
	return err == nil && ok
}

// Ls lists the immediate entries of a directory, sorted by name.
func (t *TmpFs) Ls(path string) ([]string, error) {
	infos, err := afero.ReadDir(t.fs, clean(path))
	if err != nil {
		return nil, fmt.Errorf("ls %s: %w", path, err)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Clean removes everything below the root. The root itself is kept.
func (t *TmpFs) Clean() error {
	names, err := t.Ls(".")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, name := range names {
		if err := t.fs.RemoveAll(name); err != nil {
			return fmt.Errorf("clean %s: %w", name, err)
		}
	}
	return nil
}

// TmpCwd changes the process working directory to the root, remembering the
// previous one. Calling it again keeps the first saved directory.
func (t *TmpFs) TmpCwd() error {
	if t.prevCwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		t.prevCwd = wd
	}
	if err := os.Chdir(t.Root); err != nil {
		return fmt.Errorf("chdir %s: %w", t.Root, err)
	}
	return nil
}

// Cwd restores the working directory saved by TmpCwd.
func (t *TmpFs) Cwd() error {
	if t.prevCwd == "" {
		return ErrNoSavedCwd
	}
	if err := os.Chdir(t.prevCwd); err != nil {
		return fmt.Errorf("chdir %s: %w", t.prevCwd, err)
	}
	t.prevCwd = ""
	return nil
}

// InTmpCwd reports whether a previous working directory is being held.
func (t *TmpFs) InTmpCwd() bool { return t.prevCwd != "" }
