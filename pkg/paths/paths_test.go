// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test manifest key normalization and path mapping

package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/etc/motd", "/etc/motd"},
		{"etc/motd", "/etc/motd"},
		{"//etc//motd/", "/etc/motd"},
		{"/etc/./x/../motd", "/etc/motd"},
		{"../../etc/motd", "/etc/motd"},
		{"", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestResolverKeyEquivalence(t *testing.T) {
	tests := []struct {
		name   string
		target string
		inputs []string
		want   string
	}{
		{
			name:   "home target",
			target: "/home/me",
			inputs: []string{"/etc/foo", "etc/foo", "/home/me/etc/foo", "/home/me//etc/foo/"},
			want:   "/etc/foo",
		},
		{
			name:   "root target",
			target: "/",
			inputs: []string{"/etc/foo", "etc/foo", "//etc/foo"},
			want:   "/etc/foo",
		},
		{
			name:   "trailing separator on target",
			target: "/home/me/",
			inputs: []string{"/home/me/.bashrc", ".bashrc", "/.bashrc"},
			want:   "/.bashrc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.target)
			for _, in := range tt.inputs {
				assert.Equal(t, tt.want, r.Key(in), "input %q", in)
			}
		})
	}
}

func TestResolverPrefixIsComponentWise(t *testing.T) {
	r := NewResolver("/home/me")
	assert.Equal(t, "/home/meow/x", r.Key("/home/meow/x"))
	assert.Equal(t, "/", r.Key("/home/me"))
}

func TestTargetPath(t *testing.T) {
	assert.Equal(t, "/home/me/etc/foo", NewResolver("/home/me").TargetPath("/etc/foo"))
	assert.Equal(t, "/etc/foo", NewResolver("/").TargetPath("/etc/foo"))
	assert.Equal(t, "/etc/foo", NewResolver("").TargetPath("etc/foo"))
	assert.Equal(t, "/home/me", NewResolver("/home/me").TargetPath("/"))
}

func TestRepoPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/repo", "tags", "all", "etc", "motd"), RepoPath("/repo", "all", "/etc/motd"))
}

func TestConfigDir(t *testing.T) {
	t.Run("explicit override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/hc-config")
		assert.Equal(t, "/tmp/hc-config", ConfigDir())
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		assert.Equal(t, "/tmp/xdg/hamstercage", ConfigDir())
	})
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/hamster")

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/hamster"},
		{"~/dotfiles", "/home/hamster/dotfiles"},
		{"/etc", "/etc"},
		{"~other/x", "~other/x"},
		{"relative/~", "relative/~"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
