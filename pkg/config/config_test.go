// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: koanf, filesystem (t.TempDir)
// PURPOSE: Test configuration layering: defaults, user file, env and overrides

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for name := range envKeys {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(LoadOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	hostname, _ := os.Hostname()
	assert.Equal(t, "/", cfg.Directory)
	assert.Equal(t, "hamstercage.yaml", cfg.File)
	assert.Equal(t, ".", cfg.Repo)
	assert.Equal(t, hostname, cfg.Hostname)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Empty(t, cfg.Tags)
}

func TestLoadLayers(t *testing.T) {
	tests := []struct {
		name       string
		configFile string
		content    string
		env        map[string]string
		overrides  map[string]interface{}
		check      func(t *testing.T, cfg *Config)
	}{
		{
			name:       "toml user config",
			configFile: "config.toml",
			content:    "directory = \"/home/me\"\nrepo = \"/srv/dotfiles\"\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/home/me", cfg.Directory)
				assert.Equal(t, "/srv/dotfiles", cfg.Repo)
				assert.Equal(t, "hamstercage.yaml", cfg.File)
			},
		},
		{
			name:       "yaml user config",
			configFile: "config.yaml",
			content:    "file: manifest.toml\ncolor: never\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "manifest.toml", cfg.File)
				assert.Equal(t, ColorNever, cfg.Color)
			},
		},
		{
			name:       "env beats user config",
			configFile: "config.toml",
			content:    "hostname = \"from-file\"\n",
			env:        map[string]string{"HAMSTERCAGE_HOSTNAME": "from-env"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env", cfg.Hostname)
			},
		},
		{
			name: "hook variables are not settings",
			env: map[string]string{
				"HAMSTERCAGE_REPO": "/from/hook",
				"HAMSTERCAGE_TAG":  "all",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".", cfg.Repo)
				assert.Empty(t, cfg.Tags)
			},
		},
		{
			name: "overrides beat env",
			env:  map[string]string{"HAMSTERCAGE_DIRECTORY": "/from/env"},
			overrides: map[string]interface{}{
				"directory": "/from/flag",
				"tags":      []string{"base", "desktop"},
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/from/flag", cfg.Directory)
				assert.Equal(t, []string{"base", "desktop"}, cfg.Tags)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			if tt.configFile != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, tt.configFile), []byte(tt.content), 0644))
			}

			cfg, err := Load(LoadOptions{ConfigDir: dir, Overrides: tt.overrides})
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadExplicitConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("repo = \"/custom\"\n"), 0644))

	cfg, err := Load(LoadOptions{ConfigFile: path, ConfigDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "/custom", cfg.Repo)

	_, err = Load(LoadOptions{ConfigFile: filepath.Join(dir, "missing.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadRejectsBadColor(t *testing.T) {
	clearEnv(t)
	t.Setenv("HAMSTERCAGE_COLOR", "sometimes")

	_, err := Load(LoadOptions{ConfigDir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUsage))
}

func TestManifestPath(t *testing.T) {
	cfg := &Config{Repo: "/srv/dotfiles", File: "hamstercage.yaml"}
	assert.Equal(t, "/srv/dotfiles/hamstercage.yaml", cfg.ManifestPath())

	cfg.File = "/etc/hamstercage.yaml"
	assert.Equal(t, "/etc/hamstercage.yaml", cfg.ManifestPath())
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), `file = "hamstercage.yaml"`)
}

func TestLoadExpandsHome(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", "/home/hamster")

	cfg, err := Load(LoadOptions{
		ConfigDir: t.TempDir(),
		Overrides: map[string]interface{}{"repo": "~/dotfiles", "directory": "~"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/home/hamster/dotfiles", cfg.Repo)
	assert.Equal(t, "/home/hamster", cfg.Directory)
	assert.Equal(t, "/home/hamster/dotfiles/hamstercage.yaml", cfg.ManifestPath())
}
