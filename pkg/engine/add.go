package engine

import (
	"context"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// AddOptions defines the options for Add
type AddOptions struct {
	Tag   string
	Files []string
	// Force replaces entries already in the tag
	Force bool
}

// AddResult lists the entries that were added or refreshed
type AddResult struct {
	Entries []manifest.Entry
}

// Add probes each file on the target, records it in the tag and copies its
// content into the repository. The manifest is written afterwards.
func (e *Engine) Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	defer logging.LogOperationStart(e.logger, "add")()

	if len(opts.Files) == 0 {
		return nil, errors.New(errors.ErrUsage, "Need at least one file to add")
	}
	tag, err := e.manifest.Tag(opts.Tag)
	if err != nil {
		return nil, err
	}

	result := &AddResult{}
	err = e.withHooks(ctx, OpAdd, []*manifest.Tag{tag}, func() error {
		for _, file := range opts.Files {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := e.addOne(tag, file, opts.Force)
			if err != nil {
				return err
			}
			result.Entries = append(result.Entries, entry)
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

func (e *Engine) addOne(tag *manifest.Tag, file string, force bool) (manifest.Entry, error) {
	key := e.resolver.Key(file)
	target := e.resolver.TargetPath(key)

	if _, exists := tag.Entry(key); exists && !force {
		return nil, errors.Newf(errors.ErrDuplicateEntry,
			"Unable to add %s: already added to tag %s", target, tag.Name).
			WithDetail("tag", tag.Name).
			WithDetail("path", key)
	}

	entry, err := manifest.Probe(e.fs, key, target)
	if err != nil {
		return nil, err
	}
	if err := tag.Add(entry, force); err != nil {
		return nil, err
	}
	if err := entry.Save(e.fs, e.repoPath(tag.Name, entry), target, e.manifest); err != nil {
		return nil, err
	}

	e.logger.Info().Str("tag", tag.Name).Str("path", key).Str("type", string(entry.Type())).Msg("Entry added")
	return entry, nil
}
