package manifest

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/paths"
)

// EntryType is the type name an entry is stored under
type EntryType string

const (
	TypeFile      EntryType = "file"
	TypeDirectory EntryType = "dir"
	TypeSymlink   EntryType = "link"
)

// Attributes of a file or directory entry whose manifest record omits them
const (
	DefaultMode  = 0o644
	DefaultOwner = "root"
	DefaultGroup = "root"
)

// parentDirMode is used for target directories created implicitly above a
// file or link. The process umask still applies.
const parentDirMode = 0o755

// Entry is one managed filesystem object. The set of implementations is
// closed: *File, *Directory and *Symlink.
type Entry interface {
	// Path returns the manifest key, e.g. "/etc/motd"
	Path() string
	// Type returns the stored type name
	Type() EntryType
	// HasRepoFile reports whether the entry keeps content in the repository
	HasRepoFile() bool
	// PathAsChildOf places the entry below base
	PathAsChildOf(base string) string
	// Apply makes target match the entry, using repo as the content source
	Apply(fsys filesystem.FS, repo, target string) error
	// Save refreshes the entry from target and copies content into repo
	Save(fsys filesystem.FS, repo, target string, m *Manifest) error

	sealed()
}

// Attributes are the ownership and permission bits of files and directories
type Attributes struct {
	Mode  uint32
	Owner string
	Group string
}

// File is a regular file whose content lives in the repository
type File struct {
	path string
	Attributes
}

// Directory is a directory; only its attributes are managed
type Directory struct {
	path string
	Attributes
}

// Symlink is a symbolic link with a literal link text
type Symlink struct {
	path       string
	LinkTarget string
}

// NewFile creates a file entry for key
func NewFile(key string, attrs Attributes) *File {
	return &File{path: paths.Key(key), Attributes: attrs}
}

// NewDirectory creates a directory entry for key
func NewDirectory(key string, attrs Attributes) *Directory {
	return &Directory{path: paths.Key(key), Attributes: attrs}
}

// NewSymlink creates a link entry for key pointing at linkTarget
func NewSymlink(key, linkTarget string) *Symlink {
	return &Symlink{path: paths.Key(key), LinkTarget: linkTarget}
}

func (e *File) Path() string      { return e.path }
func (e *Directory) Path() string { return e.path }
func (e *Symlink) Path() string   { return e.path }

func (e *File) Type() EntryType      { return TypeFile }
func (e *Directory) Type() EntryType { return TypeDirectory }
func (e *Symlink) Type() EntryType   { return TypeSymlink }

func (e *File) HasRepoFile() bool      { return true }
func (e *Directory) HasRepoFile() bool { return false }
func (e *Symlink) HasRepoFile() bool   { return false }

func (e *File) PathAsChildOf(base string) string      { return paths.ChildOf(base, e.path) }
func (e *Directory) PathAsChildOf(base string) string { return paths.ChildOf(base, e.path) }
func (e *Symlink) PathAsChildOf(base string) string   { return paths.ChildOf(base, e.path) }

func (e *File) sealed()      {}
func (e *Directory) sealed() {}
func (e *Symlink) sealed()   {}

// Probe creates an entry for key from what is found at target. Symlinks are
// not followed.
func Probe(fsys filesystem.FS, key, target string) (Entry, error) {
	info, err := fsys.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "Unable to add %s: no such file or directory", target).
				WithDetail("path", target)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "Unable to add %s", target)
	}

	mode := info.Mode()
	switch {
	case mode.IsDir():
		attrs, err := probeAttributes(fsys, target, info)
		if err != nil {
			return nil, err
		}
		return NewDirectory(key, attrs), nil
	case mode.IsRegular():
		attrs, err := probeAttributes(fsys, target, info)
		if err != nil {
			return nil, err
		}
		return NewFile(key, attrs), nil
	case mode&fs.ModeSymlink != 0:
		link, err := fsys.Readlink(target)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "Unable to read link %s", target)
		}
		return NewSymlink(key, link), nil
	default:
		return nil, errors.Newf(errors.ErrUnsupportedFileType,
			"Unable to create entry for %q: unsupported file type %s", target, mode.Type()).
			WithDetail("path", target)
	}
}

func probeAttributes(fsys filesystem.FS, target string, info fs.FileInfo) (Attributes, error) {
	uid, gid, err := fsys.Owner(target)
	if err != nil {
		return Attributes{}, errors.Wrapf(err, errors.ErrFileAccess, "Unable to read owner of %s", target)
	}
	return Attributes{
		Mode:  filesystem.PermBits(info.Mode()),
		Owner: filesystem.UserName(uid),
		Group: filesystem.GroupName(gid),
	}, nil
}

// Apply copies the repository file onto target and sets its attributes
func (e *File) Apply(fsys filesystem.FS, repo, target string) error {
	if err := checkType(fsys, target, isRegular, "a file"); err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(target), parentDirMode); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to create parent of %s", target)
	}
	if err := fsys.CopyFile(repo, target); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to copy %s to %s", repo, target)
	}
	// never chmod through a symlink
	if err := checkType(fsys, target, isRegular, "a file"); err != nil {
		return err
	}
	// chown clears the setuid and setgid bits, so it goes first
	if err := chown(fsys, target, e.Owner, e.Group); err != nil {
		return err
	}
	if err := fsys.Chmod(target, filesystem.FileMode(e.Mode)); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chmod %s", target)
	}
	return nil
}

// Apply creates the directory if needed and sets its ownership
func (e *Directory) Apply(fsys filesystem.FS, repo, target string) error {
	exists, err := existsAs(fsys, target, isDir, "a directory")
	if err != nil {
		return err
	}
	if !exists {
		if err := fsys.MkdirAll(target, filesystem.FileMode(e.Mode)); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to create %s", target)
		}
	}
	if err := chown(fsys, target, e.Owner, e.Group); err != nil {
		return err
	}
	if !exists {
		if err := fsys.Chmod(target, filesystem.FileMode(e.Mode)); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chmod %s", target)
		}
	}
	return nil
}

// Apply points target at the link text, replacing an existing link
func (e *Symlink) Apply(fsys filesystem.FS, repo, target string) error {
	exists, err := existsAs(fsys, target, isSymlink, "a symbolic link")
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(target), parentDirMode); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to create parent of %s", target)
	}
	if exists {
		if err := fsys.Remove(target); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to remove %s", target)
		}
	}
	if err := fsys.Symlink(e.LinkTarget, target); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to link %s to %s", target, e.LinkTarget)
	}
	return nil
}

// Save refreshes the attributes from target and copies its content into
// the repository, owned like the manifest
func (e *File) Save(fsys filesystem.FS, repo, target string, m *Manifest) error {
	info, err := lstatForSave(fsys, target)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return conflict(target, "a file")
	}
	attrs, err := probeAttributes(fsys, target, info)
	if err != nil {
		return err
	}
	e.Attributes = attrs

	if err := m.MkdirRepo(filepath.Dir(repo)); err != nil {
		return err
	}
	if err := fsys.CopyFile(target, repo); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to copy %s to %s", target, repo)
	}
	if err := fsys.Chmod(repo, filesystem.FileMode(m.FileMode)); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chmod %s", repo)
	}
	return m.chownRepo(repo)
}

// Save refreshes the attributes from target
func (e *Directory) Save(fsys filesystem.FS, repo, target string, m *Manifest) error {
	info, err := lstatForSave(fsys, target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return conflict(target, "a directory")
	}
	attrs, err := probeAttributes(fsys, target, info)
	if err != nil {
		return err
	}
	e.Attributes = attrs
	return nil
}

// Save refreshes the link text from target
func (e *Symlink) Save(fsys filesystem.FS, repo, target string, m *Manifest) error {
	info, err := lstatForSave(fsys, target)
	if err != nil {
		return err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return conflict(target, "a symbolic link")
	}
	link, err := fsys.Readlink(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to read link %s", target)
	}
	e.LinkTarget = link
	return nil
}

func lstatForSave(fsys filesystem.FS, target string) (fs.FileInfo, error) {
	info, err := fsys.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "Unable to save %s: no such file or directory", target).
				WithDetail("path", target)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "Unable to save %s", target)
	}
	return info, nil
}

func isRegular(m fs.FileMode) bool { return m.IsRegular() }
func isDir(m fs.FileMode) bool     { return m.IsDir() }
func isSymlink(m fs.FileMode) bool { return m&fs.ModeSymlink != 0 }

// existsAs reports whether target exists, failing with a conflict when it
// exists with a type other than want
func existsAs(fsys filesystem.FS, target string, want func(fs.FileMode) bool, what string) (bool, error) {
	info, err := fsys.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "Unable to inspect %s", target)
	}
	if !want(info.Mode()) {
		return true, conflict(target, what)
	}
	return true, nil
}

func checkType(fsys filesystem.FS, target string, want func(fs.FileMode) bool, what string) error {
	_, err := existsAs(fsys, target, want, what)
	return err
}

func conflict(target, what string) error {
	return errors.Newf(errors.ErrTypeConflict,
		"Unable to update %q because it exists and is not %s", target, what).
		WithDetail("path", target)
}

// chown sets owner and group without following a trailing symlink. Empty
// names leave that id alone; nothing is changed when the ids already match.
func chown(fsys filesystem.FS, target, owner, group string) error {
	if owner == "" && group == "" {
		return nil
	}
	curUID, curGID, err := fsys.Owner(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to read owner of %s", target)
	}
	uid, gid := curUID, curGID
	if owner != "" {
		if uid, err = filesystem.LookupUID(owner); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chown %s", target)
		}
	}
	if group != "" {
		if gid, err = filesystem.LookupGID(group); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chown %s", target)
		}
	}
	if uid == curUID && gid == curGID {
		return nil
	}
	if err := fsys.Lchown(target, uid, gid); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chown %s to %s:%s", target, owner, group)
	}
	return nil
}
