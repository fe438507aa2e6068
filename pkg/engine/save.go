package engine

import (
	"context"
	"strings"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// SaveOptions defines the options for Save
type SaveOptions struct {
	Scope
	// Force adds paths that match no entry to the first active tag
	Force bool
}

// SaveResult reports what Save captured
type SaveResult struct {
	Saved []manifest.Resolved
	// Added are the entries Force created
	Added    []manifest.Resolved
	Warnings []string
}

// Save copies the state of every in-scope entry from the target into the
// manifest and the repository, then writes the manifest.
func (e *Engine) Save(ctx context.Context, opts SaveOptions) (*SaveResult, error) {
	defer logging.LogOperationStart(e.logger, "save")()

	res, err := e.resolve(opts.Scope)
	if err != nil {
		return nil, err
	}
	if len(res.tags) == 0 {
		return nil, errors.New(errors.ErrUsage, "No active tags to save")
	}

	result := &SaveResult{Warnings: res.warnings}
	unmatched := manifest.Unmatched(res.filter, res.entries)
	if len(unmatched) > 0 && !opts.Force {
		return nil, errors.Newf(errors.ErrMissingEntry,
			"Unable to save %s: no such entry in tags %s",
			strings.Join(unmatched, ", "), tagList(res.tags)).
			WithDetail("paths", unmatched)
	}

	err = e.withHooks(ctx, OpSave, res.tags, func() error {
		first := res.tags[0]
		for _, key := range unmatched {
			entry, err := manifest.Probe(e.fs, key, e.resolver.TargetPath(key))
			if err != nil {
				return err
			}
			if err := first.Add(entry, false); err != nil {
				return err
			}
			r := manifest.Resolved{Tag: first, Entry: entry}
			res.entries = append(res.entries, r)
			result.Added = append(result.Added, r)
		}

		for _, r := range res.entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := e.targetPath(r.Entry)
			if err := r.Entry.Save(e.fs, e.repoPath(r.Tag.Name, r.Entry), target, e.manifest); err != nil {
				return err
			}
			e.logger.Debug().Str("tag", r.Tag.Name).Str("path", target).Msg("Entry saved")
			result.Saved = append(result.Saved, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := e.manifest.Write(); err != nil {
		return nil, err
	}
	return result, nil
}

func tagList(tags []*manifest.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
