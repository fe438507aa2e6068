package engine

import (
	"context"

	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// ApplyResult reports what Apply touched
type ApplyResult struct {
	Applied  []manifest.Resolved
	Warnings []string
}

// Apply makes the target match every in-scope entry. A type conflict on
// any entry aborts the run; entries applied before it stay applied.
func (e *Engine) Apply(ctx context.Context, scope Scope) (*ApplyResult, error) {
	defer logging.LogOperationStart(e.logger, "apply")()

	res, err := e.resolve(scope)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Warnings: res.warnings}
	err = e.withHooks(ctx, OpApply, res.tags, func() error {
		for _, r := range res.entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := e.targetPath(r.Entry)
			if err := r.Entry.Apply(e.fs, e.repoPath(r.Tag.Name, r.Entry), target); err != nil {
				return err
			}
			e.logger.Debug().Str("tag", r.Tag.Name).Str("path", target).Msg("Entry applied")
			result.Applied = append(result.Applied, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
