package engine

import (
	"context"
	"os"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// RemoveOptions defines the options for Remove
type RemoveOptions struct {
	Tag   string
	Files []string
}

// RemoveResult lists the removed entries
type RemoveResult struct {
	Removed []manifest.Entry
}

// Remove deletes entries from a tag together with their repository
// content. The target is left untouched.
func (e *Engine) Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	defer logging.LogOperationStart(e.logger, "remove")()

	if len(opts.Files) == 0 {
		return nil, errors.New(errors.ErrUsage, "Need at least one file to remove")
	}
	tag, err := e.manifest.Tag(opts.Tag)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{}
	err = e.withHooks(ctx, OpRemove, []*manifest.Tag{tag}, func() error {
		for _, file := range opts.Files {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := tag.Remove(e.resolver.Key(file))
			if err != nil {
				return err
			}
			if entry.HasRepoFile() {
				repo := e.repoPath(tag.Name, entry)
				if err := e.fs.Remove(repo); err != nil && !os.IsNotExist(err) {
					return errors.Wrapf(err, errors.ErrFileAccess, "Unable to remove %s", repo)
				}
			}
			e.logger.Info().Str("tag", tag.Name).Str("path", entry.Path()).Msg("Entry removed")
			result.Removed = append(result.Removed, entry)
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
