package engine

import (
	"context"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/textdiff"
)

// DiffResult reports whether any in-scope file differs
type DiffResult struct {
	HasDifferences bool
	Warnings       []string
}

// Diff writes a unified diff from the repository copy to the target for
// every in-scope file entry. Directories and links have no content and are
// skipped. When either side is missing only the two header lines are
// written, with "missing" in place of the timestamp.
func (e *Engine) Diff(ctx context.Context, scope Scope, out io.Writer) (*DiffResult, error) {
	defer logging.LogOperationStart(e.logger, "diff")()

	res, err := e.resolve(scope)
	if err != nil {
		return nil, err
	}

	result := &DiffResult{Warnings: res.warnings}
	err = e.withHooks(ctx, OpDiff, res.tags, func() error {
		for _, r := range res.entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !r.Entry.HasRepoFile() {
				continue
			}
			differs, err := e.diffFile(out, e.repoPath(r.Tag.Name, r.Entry), e.targetPath(r.Entry))
			if err != nil {
				return err
			}
			result.HasDifferences = result.HasDifferences || differs
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) diffFile(out io.Writer, repo, target string) (bool, error) {
	repoInfo, err := e.statFile(repo)
	if err != nil {
		return false, err
	}
	targetInfo, err := e.statFile(target)
	if err != nil {
		return false, err
	}

	var lines []string
	if repoInfo == nil || targetInfo == nil {
		lines = []string{
			textdiff.Header("---", repo, modTime(repoInfo)),
			textdiff.Header("+++", target, modTime(targetInfo)),
		}
	} else {
		from, err := e.side(repo, repoInfo)
		if err != nil {
			return false, err
		}
		to, err := e.side(target, targetInfo)
		if err != nil {
			return false, err
		}
		if lines, err = textdiff.Unified(from, to); err != nil {
			return false, errors.Wrapf(err, errors.ErrInternal, "Unable to diff %s and %s", repo, target)
		}
	}

	for _, line := range lines {
		if _, err := io.WriteString(out, line); err != nil {
			return false, errors.Wrap(err, errors.ErrFileAccess, "Unable to write diff")
		}
	}
	return len(lines) > 0, nil
}

// statFile returns nil info for a missing path and a conflict for anything
// that is not a regular file once links are followed
func (e *Engine) statFile(path string) (fs.FileInfo, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "Unable to inspect %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Newf(errors.ErrTypeConflict, "Unable to diff %q because it is not a file", path).
			WithDetail("path", path)
	}
	return info, nil
}

func (e *Engine) side(path string, info fs.FileInfo) (textdiff.Side, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return textdiff.Side{}, errors.Wrapf(err, errors.ErrFileAccess, "Unable to read %s", path)
	}
	return textdiff.Side{Label: path, Content: data, ModTime: info.ModTime()}, nil
}

func modTime(info fs.FileInfo) *time.Time {
	if info == nil {
		return nil
	}
	t := info.ModTime()
	return &t
}
