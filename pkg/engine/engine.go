package engine

import (
	"context"

	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
	"github.com/arthur-debert/hamstercage/pkg/paths"
	"github.com/rs/zerolog"
)

// Operation names, as passed to hooks
const (
	OpAdd    = "add"
	OpApply  = "apply"
	OpDiff   = "diff"
	OpRemove = "remove"
	OpSave   = "save"
)

// HookRunner runs the hooks for one step of an operation over tags
type HookRunner interface {
	Run(ctx context.Context, m *manifest.Manifest, command, step string, tags []*manifest.Tag) error
}

// Options configures an Engine
type Options struct {
	FS       filesystem.FS
	Manifest *manifest.Manifest
	// Target is the base directory entries are applied to
	Target string
	// Repo is the repository base directory holding tags/<tag>/...
	Repo string
	// Hooks runs pre and post hooks. nil disables hooks.
	Hooks HookRunner
}

// Scope selects the entries an operation works on
type Scope struct {
	// Tags are the explicitly requested tags. Empty means the host's tags.
	Tags []string
	// Hostname picks the host entry when Tags is empty
	Hostname string
	// Files limits the operation to these paths. Empty means all entries.
	Files []string
}

// Engine runs operations against one manifest
type Engine struct {
	fs       filesystem.FS
	manifest *manifest.Manifest
	resolver *paths.Resolver
	repo     string
	hooks    HookRunner
	logger   zerolog.Logger
}

// New creates an engine
func New(opts Options) *Engine {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	repo := opts.Repo
	if repo == "" {
		repo = "."
	}
	return &Engine{
		fs:       fsys,
		manifest: opts.Manifest,
		resolver: paths.NewResolver(opts.Target),
		repo:     repo,
		hooks:    opts.Hooks,
		logger:   logging.GetLogger("engine"),
	}
}

// Manifest returns the manifest the engine works on
func (e *Engine) Manifest() *manifest.Manifest {
	return e.manifest
}

// Resolver returns the path resolver for the target directory
func (e *Engine) Resolver() *paths.Resolver {
	return e.resolver
}

// resolution is the outcome of scoping an operation
type resolution struct {
	tags     []*manifest.Tag
	filter   *manifest.Filter
	entries  []manifest.Resolved
	warnings []string
}

func (e *Engine) resolve(scope Scope) (*resolution, error) {
	tags, warnings, err := e.manifest.ActiveTags(scope.Tags, scope.Hostname)
	if err != nil {
		return nil, err
	}
	filter := manifest.NewFilter(e.resolver, scope.Files)
	return &resolution{
		tags:     tags,
		filter:   filter,
		entries:  manifest.Resolve(tags, filter),
		warnings: warnings,
	}, nil
}

func (e *Engine) runHooks(ctx context.Context, command, step string, tags []*manifest.Tag) error {
	if e.hooks == nil {
		return nil
	}
	return e.hooks.Run(ctx, e.manifest, command, step, tags)
}

// withHooks runs body between the pre and post hooks of command
func (e *Engine) withHooks(ctx context.Context, command string, tags []*manifest.Tag, body func() error) error {
	if err := e.runHooks(ctx, command, manifest.StepPre, tags); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return e.runHooks(ctx, command, manifest.StepPost, tags)
}

func (e *Engine) repoPath(tag string, entry manifest.Entry) string {
	return e.manifest.RepoPath(e.repo, tag, entry)
}

func (e *Engine) targetPath(entry manifest.Entry) string {
	return entry.PathAsChildOf(e.resolver.Target())
}
