package hooks

import (
	"context"
	"strings"

	"github.com/arthur-debert/hamstercage/pkg/errors"
)

// shellPath is the interpreter used for shell hooks
const shellPath = "/bin/sh"

// ExecBackend runs the hook command as an executable
type ExecBackend struct {
	runner *Runner
}

// NewExecBackend creates an exec backend using runner
func NewExecBackend(runner *Runner) *ExecBackend {
	return &ExecBackend{runner: runner}
}

func (b *ExecBackend) Run(ctx context.Context, inv Invocation) (int, error) {
	path := inv.Hook.ScriptPath(inv.Manifest.Dir())
	args := []string{inv.Command, inv.Step, inv.Tag.Name}
	code, err := b.runner.Run(ctx, inv.Env(), path, args...)
	return checkResult(inv, append([]string{path}, args...), code, err)
}

// ShellBackend runs the hook command through /bin/sh
type ShellBackend struct {
	runner *Runner
}

// NewShellBackend creates a shell backend using runner
func NewShellBackend(runner *Runner) *ShellBackend {
	return &ShellBackend{runner: runner}
}

func (b *ShellBackend) Run(ctx context.Context, inv Invocation) (int, error) {
	code, err := b.runner.Run(ctx, inv.Env(), shellPath, "-c", inv.Hook.Command)
	return checkResult(inv, []string{inv.Hook.Command}, code, err)
}

func checkResult(inv Invocation, argv []string, code int, err error) (int, error) {
	cmdline := strings.Join(argv, " ")
	if err != nil {
		return errors.ExitFailure, errors.Wrapf(err, errors.ErrHookExecution,
			"Error executing hook %q %q", inv.Hook.Name, cmdline).
			WithDetail("hook", inv.Hook.Name).
			WithDetail("tag", inv.Tag.Name)
	}
	if code != 0 {
		return code, errors.Newf(errors.ErrHookExecution,
			"Error executing hook %q %q: command exited with %d", inv.Hook.Name, cmdline, code).
			WithDetail("hook", inv.Hook.Name).
			WithDetail("tag", inv.Tag.Name).
			WithExitCode(code)
	}
	return 0, nil
}
