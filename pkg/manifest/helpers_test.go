package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/stretchr/testify/require"
)

// currentOwner returns the names the test process creates files with
func currentOwner() (string, string) {
	return filesystem.UserName(os.Getuid()), filesystem.GroupName(os.Getgid())
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
}

// newTestManifest writes an empty manifest into a fresh repo directory
func newTestManifest(t *testing.T) *Manifest {
	t.Helper()
	repo := t.TempDir()
	m := New(filesystem.NewOS(), filepath.Join(repo, "hamstercage.yaml"))
	_, err := m.AddTag("all", "files that apply to all hosts")
	require.NoError(t, err)
	_, err = m.AddHost("testing.example.com", "", []string{"all"}, false)
	require.NoError(t, err)
	require.NoError(t, m.Write())
	return m
}
