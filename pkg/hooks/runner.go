package hooks

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner runs external commands with their output passed through
type Runner struct {
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner returns a runner writing command output to stdout and stderr
func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{
		logger: logging.GetLogger("hooks"),
		stdout: stdout,
		stderr: stderr,
	}
}

// Run runs command and returns its exit code. err is only set when the
// command could not be started or did not exit normally.
func (r *Runner) Run(ctx context.Context, env []string, command string, args ...string) (int, error) {
	cmdStr := cmdForLog(command, args...)
	logging.LogCommand(r.logger, command, args)

	cmd := exec.CommandContext(ctx, command, args...)
	if len(env) != 0 {
		cmd.Env = env
	}
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	start := time.Now()
	err := cmd.Run()
	wallTime := time.Since(start)

	if ctx.Err() != nil {
		return -1, fmt.Errorf("Run(%s): %w", cmdStr, ctx.Err())
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			return -1, fmt.Errorf("Run(%s): %w", cmdStr, err)
		}
		r.logger.Debug().Str("cmd", cmdStr).Int("exitCode", code).Dur("time", wallTime).Msg("command failed")
		return code, nil
	}
	if err != nil {
		return -1, fmt.Errorf("Run(%s): %w", cmdStr, err)
	}

	r.logger.Debug().Str("cmd", cmdStr).Dur("time", wallTime).Msg("command result")
	return 0, nil
}

func cmdForLog(command string, args ...string) string {
	if strings.ContainsAny(command, " \t\n") {
		command = fmt.Sprintf("%q", command)
	}
	argsCopy := make([]string, len(args))
	copy(argsCopy, args)
	for i := range args {
		if strings.ContainsAny(args[i], " \t\n") {
			argsCopy[i] = fmt.Sprintf("%q", args[i])
		}
	}
	return strings.TrimSpace(command + " " + strings.Join(argsCopy, " "))
}
