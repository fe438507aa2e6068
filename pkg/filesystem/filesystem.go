package filesystem

import (
	"io/fs"
)

// FS is the filesystem surface used by the entry model
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error

	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	Remove(name string) error
	Chmod(name string, mode fs.FileMode) error

	// Owner returns the numeric owner and group of name without following
	// a trailing symlink
	Owner(name string) (uid, gid int, err error)
	// Lchown changes ownership without following a trailing symlink
	Lchown(name string, uid, gid int) error

	// CopyFile copies content, permission bits and modification time of a
	// regular file. Parent directories of dst must already exist.
	CopyFile(src, dst string) error
}
