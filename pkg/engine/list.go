package engine

import (
	"context"
	"io/fs"
	"os"
	"sort"
	"time"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/internal/hashutil"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// Status markers shown in long listings
const (
	StatusOK       = " "
	StatusMissing  = "!"
	StatusModified = "*"
)

// symlinkMode is shown for links, which carry no mode of their own
const symlinkMode = 0o777

// ListRow describes one in-scope entry and its target counterpart
type ListRow struct {
	// Path is the target path of the entry
	Path   string
	Tag    string
	Entry  manifest.Entry
	Status string
	Mode   uint32
	Owner  string
	Group  string
	// Size is only set for regular files present on the target
	Size int64
	// ModTime is nil when the target is missing
	ModTime *time.Time
}

// ListResult holds the rows sorted by target path
type ListResult struct {
	Rows     []ListRow
	Warnings []string
}

// List describes the in-scope entries and how the target compares to them.
// It never runs hooks or changes anything.
func (e *Engine) List(ctx context.Context, scope Scope) (*ListResult, error) {
	defer logging.LogOperationStart(e.logger, "list")()

	res, err := e.resolve(scope)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Warnings: res.warnings}
	for _, r := range res.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := e.listRow(r)
		if err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, row)
	}
	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Path < result.Rows[j].Path
	})
	return result, nil
}

func (e *Engine) listRow(r manifest.Resolved) (ListRow, error) {
	target := e.targetPath(r.Entry)
	row := ListRow{Path: target, Tag: r.Tag.Name, Entry: r.Entry, Status: StatusOK}

	info, err := e.fs.Lstat(target)
	if err != nil {
		if !os.IsNotExist(err) {
			return row, errors.Wrapf(err, errors.ErrFileAccess, "Unable to inspect %s", target)
		}
		info = nil
	}
	if info != nil {
		t := info.ModTime()
		row.ModTime = &t
		if info.Mode().IsRegular() {
			row.Size = info.Size()
		}
	} else {
		row.Status = StatusMissing
	}

	switch v := r.Entry.(type) {
	case *manifest.File:
		row.Mode, row.Owner, row.Group = v.Mode, v.Owner, v.Group
		if info != nil && !e.sameFile(e.repoPath(r.Tag.Name, v), target, info) {
			row.Status = StatusModified
		}
	case *manifest.Directory:
		row.Mode, row.Owner, row.Group = v.Mode, v.Owner, v.Group
		if info != nil && !info.IsDir() {
			row.Status = StatusModified
		}
	case *manifest.Symlink:
		row.Mode = symlinkMode
		if info != nil {
			if uid, gid, err := e.fs.Owner(target); err == nil {
				row.Owner, row.Group = filesystem.UserName(uid), filesystem.GroupName(gid)
			}
			if link, err := e.fs.Readlink(target); err != nil || link != v.LinkTarget {
				row.Status = StatusModified
			}
		}
	}
	return row, nil
}

// sameFile compares checksums. An unreadable side counts as different.
func (e *Engine) sameFile(repo, target string, info fs.FileInfo) bool {
	if !info.Mode().IsRegular() {
		return false
	}
	same, err := hashutil.SameContent(e.fs, repo, target)
	if err != nil {
		e.logger.Debug().Err(err).Str("path", target).Msg("Unable to compare content")
		return false
	}
	return same
}
