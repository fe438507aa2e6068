package manifest

import (
	"path/filepath"

	"github.com/arthur-debert/hamstercage/pkg/errors"
)

// HookType selects how a hook command is run
type HookType string

const (
	// HookExec runs the command as an executable with [cmd, step, tag] args
	HookExec HookType = "exec"
	// HookShell passes the command to /bin/sh -c
	HookShell HookType = "shell"
	// HookInterpreted runs the command as a script in the embedded interpreter
	HookInterpreted HookType = "interpreted"
)

// Step values
const (
	StepPre  = "pre"
	StepPost = "post"
)

// ValidHookTypes lists the accepted hook types in display order
var ValidHookTypes = []HookType{HookExec, HookShell, HookInterpreted}

// Hook is a command run before or after an operation on a tag
type Hook struct {
	Name        string
	Command     string
	Description string
	Type        HookType
}

// Validate checks that the hook can be dispatched
func (h *Hook) Validate() error {
	if h.Command == "" {
		return errors.Newf(errors.ErrManifestInvalid, "In definition of hook %q: missing \"command\"", h.Name)
	}
	for _, t := range ValidHookTypes {
		if h.Type == t {
			return nil
		}
	}
	return errors.Newf(errors.ErrManifestInvalid,
		"In definition of hook %q: Invalid hook type %q, must be one of exec, shell, interpreted", h.Name, h.Type)
}

// ScriptPath resolves the command against dir when it is relative
func (h *Hook) ScriptPath(dir string) string {
	if filepath.IsAbs(h.Command) {
		return h.Command
	}
	return filepath.Join(dir, h.Command)
}
