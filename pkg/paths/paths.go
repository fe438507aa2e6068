package paths

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppName is the directory name used below XDG base directories
	AppName = "hamstercage"

	// TagsDir is the repository subdirectory holding per tag content
	TagsDir = "tags"

	// EnvConfigDir overrides the XDG config directory for hamstercage
	EnvConfigDir = "HAMSTERCAGE_CONFIG_DIR"
)

// Key reduces p to a manifest key. The result always starts with a single
// separator, has no trailing separator and cannot climb above the root.
func Key(p string) string {
	return path.Clean("/" + filepath.ToSlash(p))
}

// ChildOf joins a manifest key onto base
func ChildOf(base, key string) string {
	rel := strings.TrimPrefix(Key(key), "/")
	if rel == "" {
		return filepath.Clean(base)
	}
	return filepath.Join(base, filepath.FromSlash(rel))
}

// Resolver normalizes user supplied paths against a target directory
type Resolver struct {
	target string
}

// NewResolver creates a resolver for the given target directory
func NewResolver(target string) *Resolver {
	if target == "" {
		target = "/"
	}
	return &Resolver{target: filepath.Clean(target)}
}

// Target returns the cleaned target directory
func (r *Resolver) Target() string {
	return r.target
}

// Key maps a target prefixed, absolute or relative path to its manifest key
func (r *Resolver) Key(p string) string {
	if r.target != "/" {
		cleaned := filepath.Clean(p)
		if cleaned == r.target {
			return "/"
		}
		if strings.HasPrefix(cleaned, r.target+string(filepath.Separator)) {
			return Key(strings.TrimPrefix(cleaned, r.target))
		}
	}
	return Key(p)
}

// TargetPath returns the live filesystem location of a manifest key
func (r *Resolver) TargetPath(key string) string {
	return ChildOf(r.target, key)
}

// RepoPath returns where the content of key is kept for tag inside repo
func RepoPath(repo, tag, key string) string {
	return ChildOf(filepath.Join(repo, TagsDir, tag), key)
}

// ConfigDir returns the hamstercage config directory, honouring
// HAMSTERCAGE_CONFIG_DIR and XDG_CONFIG_HOME
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return "", fmt.Errorf("cannot expand %s: home directory unknown", p)
	}
	return home + p[1:], nil
}
