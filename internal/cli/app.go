package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/hamstercage/pkg/config"
	"github.com/arthur-debert/hamstercage/pkg/engine"
	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/hooks"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
	"github.com/arthur-debert/hamstercage/pkg/ui"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags
type globalOptions struct {
	directory  string
	file       string
	hostname   string
	repo       string
	tags       []string
	verbosity  int
	configFile string
	color      string
}

// flagKeys maps persistent flag names to config keys
var flagKeys = map[string]string{
	"directory": "directory",
	"file":      "file",
	"hostname":  "hostname",
	"repo":      "repo",
	"tag":       "tags",
	"color":     "color",
}

// app carries the state of one invocation
type app struct {
	opts   globalOptions
	cfg    *config.Config
	fs     filesystem.FS
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{fs: filesystem.NewOS(), stdout: stdout, stderr: stderr}
}

// exitStatus ends a command with a status but without an error message
type exitStatus int

func (s exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(s))
}

// Run executes hamstercage with args and returns the process exit status
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(args)
	return a.exitCode(root.ExecuteContext(ctx))
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return 0
	}
	var status exitStatus
	if stderrors.As(err, &status) {
		return int(status)
	}
	if !errors.IsErrorCode(err, errors.ErrUsage) && strings.HasPrefix(err.Error(), MsgErrUnknownCmd) {
		err = errors.Wrap(err, errors.ErrUsage, MsgErrInvalidArgs)
	}
	a.errPrinter().Error(err)
	return errors.GetExitCode(err)
}

// format returns the output format chosen by config, or by the --color
// flag when config could not be loaded
func (a *app) format() ui.Format {
	color := a.opts.color
	if a.cfg != nil {
		color = a.cfg.Color
	}
	f, err := ui.ParseColor(color)
	if err != nil {
		return ui.FormatAuto
	}
	return f
}

func (a *app) errPrinter() *ui.Printer {
	return ui.NewPrinter(a.stderr, a.format())
}

func (a *app) outPrinter() *ui.Printer {
	return ui.NewPrinter(a.stdout, a.format())
}

// setup runs before every command: logging first, then configuration
func (a *app) setup(cmd *cobra.Command) error {
	logging.SetupLogger(a.opts.verbosity)
	logger := logging.GetLogger("cli")
	logger.Debug().Str("command", cmd.Name()).Msg("Command started")

	overrides := make(map[string]interface{})
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		switch flag {
		case "tag":
			overrides[key] = a.opts.tags
		default:
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.opts.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger.Debug().Str("config", cfg.String()).Msg("Configuration loaded")
	return nil
}

func (a *app) loadManifest() (*manifest.Manifest, error) {
	return manifest.Load(a.fs, a.cfg.ManifestPath())
}

func (a *app) newEngine(m *manifest.Manifest) *engine.Engine {
	return engine.New(engine.Options{
		FS:       a.fs,
		Manifest: m,
		Target:   a.cfg.Directory,
		Repo:     a.cfg.Repo,
		Hooks:    hooks.NewDispatcher(a.fs, a.stdout, a.stderr),
	})
}

// loadEngine loads the manifest and wraps it in an engine
func (a *app) loadEngine() (*engine.Engine, error) {
	m, err := a.loadManifest()
	if err != nil {
		return nil, err
	}
	return a.newEngine(m), nil
}

func (a *app) scope(files []string) engine.Scope {
	return engine.Scope{Tags: a.cfg.Tags, Hostname: a.cfg.Hostname, Files: files}
}

func (a *app) warn(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	p := a.errPrinter()
	for _, w := range warnings {
		p.Warning(w)
	}
}

// usageArgs marks argument validation failures as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Wrap(err, errors.ErrUsage, MsgErrInvalidArgs)
		}
		return nil
	}
}
