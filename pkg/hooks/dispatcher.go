package hooks

import (
	"context"
	"io"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
	"github.com/rs/zerolog"
)

// Dispatcher finds and runs the hooks of the active tags
type Dispatcher struct {
	backends map[manifest.HookType]Backend
	logger   zerolog.Logger
}

// NewDispatcher returns a dispatcher with the exec, shell and interpreted
// backends registered, writing hook output to stdout and stderr
func NewDispatcher(fsys filesystem.FS, stdout, stderr io.Writer) *Dispatcher {
	runner := NewRunner(stdout, stderr)
	d := &Dispatcher{
		backends: make(map[manifest.HookType]Backend),
		logger:   logging.GetLogger("hooks"),
	}
	d.Register(manifest.HookExec, NewExecBackend(runner))
	d.Register(manifest.HookShell, NewShellBackend(runner))
	d.Register(manifest.HookInterpreted, NewLuaBackend(fsys, stderr))
	return d
}

// Register installs or replaces the backend for a hook type
func (d *Dispatcher) Register(t manifest.HookType, b Backend) {
	d.backends[t] = b
}

// Run runs the hooks for command and step over tags, in order. A nonzero
// result stops the remaining tags for this step without failing.
func (d *Dispatcher) Run(ctx context.Context, m *manifest.Manifest, command, step string, tags []*manifest.Tag) error {
	for _, tag := range tags {
		hook := tag.FindHook(command, step)
		if hook == nil {
			continue
		}

		backend, ok := d.backends[hook.Type]
		if !ok {
			return errors.Newf(errors.ErrHookExecution,
				"In definition of hook %q: no backend for hook type %q", hook.Name, hook.Type).
				WithDetail("tag", tag.Name)
		}

		d.logger.Info().
			Str("tag", tag.Name).
			Str("hook", hook.Name).
			Str("type", string(hook.Type)).
			Str("step", step).
			Str("cmd", command).
			Msg("Running hook")

		code, err := backend.Run(ctx, Invocation{
			Manifest: m,
			Hook:     hook,
			Tag:      tag,
			Command:  command,
			Step:     step,
		})
		if err != nil {
			return err
		}
		if code != 0 {
			d.logger.Warn().
				Str("tag", tag.Name).
				Str("hook", hook.Name).
				Int("result", code).
				Msg("Hook failed, skipping remaining tags for this step")
			return nil
		}
	}
	return nil
}
