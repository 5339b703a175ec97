// pkg/clirunner/runner.go
// Package clirunner invokes cobra command trees in-process and captures what
// they print, the error they return and the exit code a shell would see.
package clirunner

import (
	"bytes"
	"context"
	"io"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/spf13/cobra"
)

// Result is the captured outcome of one command invocation.
type Result struct {
	// Args are the arguments passed after the command path.
	Args []string
	// Stdout and Stderr hold each stream separately; Output interleaves both
	// in write order.
	Stdout   string
	Stderr   string
	Output   string
	ExitCode int
	// Err is the error the command returned, or a *PanicError.
	Err error
}

// Success reports whether the invocation exited cleanly.
func (r *Result) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// Runner executes commands with captured streams. The zero value is ready to
// use and feeds commands an empty stdin.
type Runner struct {
	Input io.Reader
}

// lockedBuffer serialises writes from the two stream writers into the
// combined buffer.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Invoke runs cmd with args. cmd may be any command of a tree; execution
// starts at the root with cmd's path prepended, the way a shell would call
// it. Failures of the command are reported in the Result, never returned.
func (r *Runner) Invoke(ctx context.Context, cmd *cobra.Command, args []string) (res *Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	in := r.Input
	if in == nil {
		in = strings.NewReader("")
	}

	var stdout, stderr bytes.Buffer
	combined := &lockedBuffer{}

	root := cmd.Root()
	root.SetArgs(append(commandPath(cmd), args...))
	root.SetIn(in)
	root.SetOut(io.MultiWriter(&stdout, combined))
	root.SetErr(io.MultiWriter(&stderr, combined))

	res = &Result{Args: append([]string(nil), args...)}
	defer func() {
		if p := recover(); p != nil {
			res.Err = &PanicError{Value: p, Stack: debug.Stack()}
		}
		res.Stdout = stdout.String()
		res.Stderr = stderr.String()
		res.Output = combined.String()
		res.ExitCode = ExitCode(res.Err)
	}()

	_, res.Err = root.ExecuteContextC(ctx)
	return res
}

// commandPath lists the names from below the root down to cmd.
func commandPath(cmd *cobra.Command) []string {
	var path []string
	for c := cmd; c.HasParent(); c = c.Parent() {
		path = append([]string{c.Name()}, path...)
	}
	return path
}

// Find resolves path one token at a time below root, matching command names
// and aliases. An empty path yields root itself.
func Find(root *cobra.Command, path []string) (*cobra.Command, error) {
	cur := root
	for _, token := range path {
		next := child(cur, token)
		if next == nil {
			return nil, &UnknownCommandError{Path: append([]string(nil), path...)}
		}
		cur = next
	}
	return cur, nil
}

func child(parent *cobra.Command, name string) *cobra.Command {
	for _, c := range parent.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return c
		}
	}
	return nil
}
