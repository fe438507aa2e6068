// pkg/manifest/manifest_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), yaml.v3, go-toml/v2
// PURPOSE: Test manifest load/write in both formats, validation and repo metadata

package manifest

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `hosts:
  testing.example.com:
    tags:
      - all
      - desktop
tags:
  all:
    description: files that apply to all hosts
    entries:
      foo.txt:
        group: staff
        mode: 0o760
        owner: me
        type: file
      /etc/:
        mode: "0755"
        owner: root
        group: wheel
        type: dir
      /a-link:
        target: /dev/null
        type: link
    hooks:
      post-apply:
        command: hooks/reload.sh
        description: reload services
        type: exec
  desktop:
    description: ""
`

func loadString(t *testing.T, name, content string) (*Manifest, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Load(filesystem.NewOS(), path)
}

func TestLoadYAML(t *testing.T) {
	m, err := loadString(t, "hamstercage.yaml", sampleYAML)
	require.NoError(t, err)

	require.Contains(t, m.Hosts, "testing.example.com")
	assert.Equal(t, []string{"all", "desktop"}, m.Hosts["testing.example.com"].Tags)

	all, err := m.Tag("all")
	require.NoError(t, err)
	assert.Equal(t, "files that apply to all hosts", all.Description)
	assert.Equal(t, []string{"/a-link", "/etc", "/foo.txt"}, all.Keys())

	f, ok := all.Entries["/foo.txt"].(*File)
	require.True(t, ok)
	assert.Equal(t, Attributes{Mode: 0o760, Owner: "me", Group: "staff"}, f.Attributes)

	d, ok := all.Entries["/etc"].(*Directory)
	require.True(t, ok)
	assert.Equal(t, uint32(0o755), d.Mode)

	l, ok := all.Entries["/a-link"].(*Symlink)
	require.True(t, ok)
	assert.Equal(t, "/dev/null", l.LinkTarget)

	hook := all.FindHook("apply", StepPost)
	require.NotNil(t, hook)
	assert.Equal(t, HookExec, hook.Type)
	assert.Equal(t, "hooks/reload.sh", hook.Command)

	assert.Equal(t, uint32(0o644), m.FileMode)
	assert.Equal(t, uint32(0o755), m.DirMode)
	assert.Equal(t, os.Getuid(), m.UID)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filesystem.NewOS(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestNotFound))
		assert.Equal(t, 71, errors.GetExitCode(err))
	})

	tests := []struct {
		name    string
		file    string
		content string
		code    errors.ErrorCode
	}{
		{"yaml syntax", "m.yaml", "tags: [unclosed", errors.ErrManifestParse},
		{"toml syntax", "m.toml", "[tags\n", errors.ErrManifestParse},
		{"bad entry type", "m.yaml", "tags:\n  all:\n    entries:\n      /x:\n        type: socket\n", errors.ErrManifestInvalid},
		{"bad mode", "m.yaml", "tags:\n  all:\n    entries:\n      /x:\n        type: file\n        mode: rwx\n", errors.ErrManifestInvalid},
		{"link without target", "m.yaml", "tags:\n  all:\n    entries:\n      /x:\n        type: link\n", errors.ErrManifestInvalid},
		{"host without tags", "m.yaml", "hosts:\n  box:\n    description: the box\n", errors.ErrManifestInvalid},
		{"host with null tags", "m.yaml", "hosts:\n  box:\n    tags:\n", errors.ErrManifestInvalid},
		{"bad hook type", "m.yaml", "tags:\n  all:\n    hooks:\n      '*':\n        command: x\n        type: python\n", errors.ErrManifestInvalid},
		{
			name: "keys colliding after normalization",
			file: "m.yaml",
			content: "tags:\n  all:\n    entries:\n" +
				"      /etc/motd:\n        type: file\n        mode: '0o644'\n" +
				"      etc/motd/:\n        type: file\n        mode: '0o600'\n",
			code: errors.ErrManifestInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, tt.file, tt.content)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoadDefaultsEntryAttributes(t *testing.T) {
	m, err := loadString(t, "m.yaml", "hosts:\n  box:\n    tags: []\n"+
		"tags:\n  all:\n    entries:\n"+
		"      /etc/motd: {}\n"+
		"      /etc:\n        type: dir\n        owner: admin\n")
	require.NoError(t, err)
	assert.Empty(t, m.Hosts["box"].Tags)

	motd, ok := m.Tags["all"].Entry("/etc/motd")
	require.True(t, ok)
	require.IsType(t, &File{}, motd)
	assert.Equal(t, Attributes{Mode: 0o644, Owner: "root", Group: "root"}, motd.(*File).Attributes)

	etc, ok := m.Tags["all"].Entry("/etc")
	require.True(t, ok)
	require.IsType(t, &Directory{}, etc)
	assert.Equal(t, Attributes{Mode: 0o644, Owner: "admin", Group: "root"}, etc.(*Directory).Attributes)
}

func TestWriteYAMLLayout(t *testing.T) {
	m := newTestManifest(t)

	data, err := os.ReadFile(m.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hosts:\n  testing.example.com:\n    tags:\n")
	assert.Contains(t, string(data), "- all\n")
	assert.Contains(t, string(data), "tags:\n  all:\n    description: files that apply to all hosts\n")
	assert.NotContains(t, string(data), "entries", "empty entry maps are omitted")
	assert.NotContains(t, string(data), "hooks")

	all := m.Tags["all"]
	require.NoError(t, all.Add(NewFile("foo.txt", Attributes{Mode: 0o760, Owner: "me", Group: "staff"}), false))
	require.NoError(t, m.Write())

	data, err = os.ReadFile(m.File)
	require.NoError(t, err)
	assert.Contains(t, string(data),
		"    entries:\n"+
			"      /foo.txt:\n"+
			"        group: staff\n"+
			"        mode: \"0o760\"\n"+
			"        owner: me\n"+
			"        type: file\n")
}

func TestRoundTripBothFormats(t *testing.T) {
	for _, name := range []string{"hamstercage.yaml", "hamstercage.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			m := New(filesystem.NewOS(), path)
			tag, err := m.AddTag("all", "everything")
			require.NoError(t, err)
			require.NoError(t, tag.Add(NewFile("/etc/motd", Attributes{Mode: 0o4644, Owner: "root", Group: "wheel"}), false))
			require.NoError(t, tag.Add(NewDirectory("/etc", Attributes{Mode: 0o755, Owner: "root", Group: "wheel"}), false))
			require.NoError(t, tag.Add(NewSymlink("/etc/localtime", "/usr/share/zoneinfo/UTC"), false))
			tag.Hooks["*"] = &Hook{Name: "*", Command: "echo hi", Description: "greet", Type: HookShell}
			_, err = m.AddHost("box", "the box", []string{"all"}, false)
			require.NoError(t, err)
			require.NoError(t, m.Write())

			loaded, err := Load(filesystem.NewOS(), path)
			require.NoError(t, err)

			assert.Equal(t, m.Hosts, loaded.Hosts)
			assert.Equal(t, m.Tags["all"].Description, loaded.Tags["all"].Description)
			assert.Equal(t, m.Tags["all"].Hooks, loaded.Tags["all"].Hooks)
			assert.Equal(t, m.Tags["all"].Entries, loaded.Tags["all"].Entries)
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("hamstercage.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("manifest"))
	assert.Equal(t, FormatTOML, FormatFor("/srv/hamstercage.TOML"))
}

func TestAddTagAndHost(t *testing.T) {
	m := New(filesystem.NewOS(), "/x/hamstercage.yaml")
	_, err := m.AddTag("all", "")
	require.NoError(t, err)

	_, err = m.AddTag("all", "again")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTagExists))

	_, err = m.AddHost("box", "", []string{"all", "nope"}, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownTag))

	_, err = m.AddHost("box", "", []string{"all"}, false)
	require.NoError(t, err)
	_, err = m.AddHost("box", "", []string{}, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHostExists))
	_, err = m.AddHost("box", "replaced", []string{}, true)
	require.NoError(t, err)
	assert.Equal(t, "replaced", m.Hosts["box"].Description)

	assert.Equal(t, []string{"all"}, m.TagNames())
	assert.Equal(t, []string{"box"}, m.HostNames())
}

func TestDirModeDerivation(t *testing.T) {
	tests := []struct {
		file uint32
		dir  uint32
	}{
		{0o644, 0o755},
		{0o664, 0o775},
		{0o600, 0o700},
		{0o640, 0o750},
		{0o444, 0o555},
	}
	for _, tt := range tests {
		m := &Manifest{}
		m.setFileMode(tt.file)
		assert.Equal(t, tt.dir, m.DirMode, "file mode %o", tt.file)
	}
}

func TestMkdirRepo(t *testing.T) {
	m := newTestManifest(t)
	require.NoError(t, os.Chmod(m.File, 0o640))
	require.NoError(t, m.readMetadata())

	dir := filepath.Join(m.Dir(), "tags", "all", "etc", "ssh")
	require.NoError(t, m.MkdirRepo(dir))
	require.NoError(t, m.MkdirRepo(dir), "existing directories are fine")

	for _, d := range []string{
		filepath.Join(m.Dir(), "tags"),
		filepath.Join(m.Dir(), "tags", "all"),
		filepath.Join(m.Dir(), "tags", "all", "etc"),
		dir,
	} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0o750), info.Mode().Perm(), d)
	}

	info, err := os.Stat(m.Dir())
	require.NoError(t, err)
	assert.NotEqual(t, fs.FileMode(0o750), info.Mode().Perm(), "pre-existing directories are left alone")
}
