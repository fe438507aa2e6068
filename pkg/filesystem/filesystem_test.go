// pkg/filesystem/filesystem_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test the OS filesystem, mode conversion and ownership helpers

package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	require.NotNil(t, fsys)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, fsys.WriteFile(testFile, []byte("hello world"), 0644))

	info, err := fsys.Lstat(testFile)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fsys.Symlink("test.txt", link))
	target, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", target)

	info, err = fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)

	require.NoError(t, fsys.Chmod(testFile, 0600))
	info, err = fsys.Stat(link)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())

	require.NoError(t, fsys.Remove(link))
	_, err = fsys.Lstat(link)
	assert.True(t, os.IsNotExist(err))
}

func TestCopyFilePreservesTimes(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src")
	dst := filepath.Join(tmpDir, "dst")

	require.NoError(t, os.WriteFile(src, []byte("content"), 0640))
	mtime := time.Date(2020, 5, 17, 12, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	require.NoError(t, fsys.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v, want %v", info.ModTime(), mtime)

	require.NoError(t, os.WriteFile(src, []byte("new"), 0640))
	require.NoError(t, fsys.CopyFile(src, dst))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data), "existing destination is overwritten")
}

func TestOwnerDoesNotFollowSymlinks(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "nowhere"), link))

	uid, gid, err := fsys.Owner(link)
	require.NoError(t, err)
	assert.Equal(t, os.Getuid(), uid)
	assert.Equal(t, os.Getgid(), gid)

	require.NoError(t, fsys.Lchown(link, uid, gid))

	_, _, err = fsys.Owner(filepath.Join(tmpDir, "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestModeConversion(t *testing.T) {
	tests := []struct {
		bits uint32
		mode fs.FileMode
	}{
		{0o644, 0o644},
		{0o4755, fs.ModeSetuid | 0o755},
		{0o2770, fs.ModeSetgid | 0o770},
		{0o1777, fs.ModeSticky | 0o777},
		{0o7000, fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatUint(uint64(tt.bits), 8), func(t *testing.T) {
			assert.Equal(t, tt.mode, FileMode(tt.bits))
			assert.Equal(t, tt.bits, PermBits(tt.mode))
		})
	}

	assert.Equal(t, uint32(0o755), PermBits(fs.ModeDir|0o755), "type bits are dropped")
}

func TestOwnerNames(t *testing.T) {
	uid := os.Getuid()
	name := UserName(uid)
	require.NotEmpty(t, name)

	got, err := LookupUID(name)
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	gid := os.Getgid()
	group := GroupName(gid)
	require.NotEmpty(t, group)
	got, err = LookupGID(group)
	require.NoError(t, err)
	assert.Equal(t, gid, got)
}

func TestLookupNumericFallback(t *testing.T) {
	uid, err := LookupUID("987654")
	require.NoError(t, err)
	assert.Equal(t, 987654, uid)

	gid, err := LookupGID("987654")
	require.NoError(t, err)
	assert.Equal(t, 987654, gid)

	_, err = LookupUID("no-such-user-hamstercage")
	assert.Error(t, err)
	_, err = LookupGID("no-such-group-hamstercage")
	assert.Error(t, err)

	assert.Equal(t, "987654", UserName(987654))
	assert.Equal(t, "987654", GroupName(987654))
}
