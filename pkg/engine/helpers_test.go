package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
	"github.com/stretchr/testify/require"
)

const testHost = "testing.example.com"

type hookCall struct {
	Command string
	Step    string
	Tags    []string
}

type recordingHooks struct {
	calls []hookCall
	// fail maps "step-command" to the error that hook step returns
	fail map[string]error
	// observe, when set, sees the tags as each hook step starts
	observe func(command, step string, tags []*manifest.Tag)
}

func (r *recordingHooks) Run(ctx context.Context, m *manifest.Manifest, command, step string, tags []*manifest.Tag) error {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	r.calls = append(r.calls, hookCall{Command: command, Step: step, Tags: names})
	if r.observe != nil {
		r.observe(command, step, tags)
	}
	return r.fail[step+"-"+command]
}

type testEnv struct {
	t      *testing.T
	target string
	repo   string
	file   string
	hooks  *recordingHooks
	engine *Engine
}

// newTestEnv initializes a manifest in a fresh repository and returns an
// engine targeting a second fresh directory
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := t.TempDir()
	file := filepath.Join(repo, "hamstercage.yaml")
	_, err := Init(InitOptions{FS: filesystem.NewOS(), File: file, Hostname: testHost})
	require.NoError(t, err)

	env := &testEnv{t: t, target: t.TempDir(), repo: repo, file: file}
	env.reload()
	return env
}

// reload reads the manifest from disk into a new engine
func (env *testEnv) reload() {
	env.t.Helper()
	m, err := manifest.Load(filesystem.NewOS(), env.file)
	require.NoError(env.t, err)
	env.hooks = &recordingHooks{}
	env.engine = New(Options{
		FS:       filesystem.NewOS(),
		Manifest: m,
		Target:   env.target,
		Repo:     env.repo,
		Hooks:    env.hooks,
	})
}

func (env *testEnv) targetPath(key string) string {
	return filepath.Join(env.target, filepath.FromSlash(key))
}

func (env *testEnv) repoPath(tag, key string) string {
	return filepath.Join(env.repo, "tags", tag, filepath.FromSlash(key))
}

func (env *testEnv) writeTarget(key, content string, mode os.FileMode) string {
	env.t.Helper()
	path := env.targetPath(key)
	writeFile(env.t, path, content, mode)
	return path
}

func (env *testEnv) scope(files ...string) Scope {
	return Scope{Hostname: testHost, Files: files}
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
