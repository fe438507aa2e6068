package hooks

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// Hook environment variable names. Hook scripts depend on these.
const (
	EnvCmd      = "HAMSTERCAGE_CMD"
	EnvManifest = "HAMSTERCAGE_MANIFEST"
	EnvHook     = "HAMSTERCAGE_HOOK"
	EnvRepo     = "HAMSTERCAGE_REPO"
	EnvStep     = "HAMSTERCAGE_STEP"
	EnvTag      = "HAMSTERCAGE_TAG"
)

// Invocation describes one hook call
type Invocation struct {
	Manifest *manifest.Manifest
	Hook     *manifest.Hook
	Tag      *manifest.Tag
	// Command is the operation being run, e.g. "apply"
	Command string
	// Step is "pre" or "post"
	Step string
}

// Backend runs one type of hook. The returned code is the hook's result;
// a non-nil error aborts the operation.
type Backend interface {
	Run(ctx context.Context, inv Invocation) (int, error)
}

// Env returns the process environment extended with the hook variables
func (inv Invocation) Env() []string {
	return append(os.Environ(),
		envKV(EnvCmd, inv.Command),
		envKV(EnvManifest, inv.Manifest.File),
		envKV(EnvHook, inv.Hook.Name),
		envKV(EnvRepo, inv.Manifest.Dir()),
		envKV(EnvStep, inv.Step),
		envKV(EnvTag, inv.Tag.Name),
	)
}

func envKV(k, v string) string {
	return fmt.Sprintf("%s=%s", k, v)
}
