package hooks

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	lua "github.com/yuin/gopher-lua"
)

var syntaxLinePattern = regexp.MustCompile(`line:(\d+)`)

// LuaBackend runs interpreted hooks in an embedded Lua state
type LuaBackend struct {
	fs     filesystem.FS
	stderr io.Writer
}

// NewLuaBackend creates a Lua backend. Runtime errors are reported to
// stderr.
func NewLuaBackend(fsys filesystem.FS, stderr io.Writer) *LuaBackend {
	return &LuaBackend{fs: fsys, stderr: stderr}
}

func (b *LuaBackend) Run(ctx context.Context, inv Invocation) (int, error) {
	path := inv.Hook.ScriptPath(inv.Manifest.Dir())
	script, err := b.fs.ReadFile(path)
	if err != nil {
		return errors.ExitFailure, errors.Wrapf(err, errors.ErrHookExecution,
			"Error executing hook %q: cannot read script %q", inv.Hook.Name, path).
			WithDetail("hook", inv.Hook.Name)
	}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	globals := map[string]string{
		"cmd":      inv.Command,
		"manifest": inv.Manifest.File,
		"hook":     inv.Hook.Name,
		"repo":     inv.Manifest.Dir(),
		"step":     inv.Step,
		"tag":      inv.Tag.Name,
	}
	for name, value := range globals {
		L.SetGlobal(name, lua.LString(value))
	}

	fn, err := L.Load(bytes.NewReader(script), path)
	if err != nil {
		line := syntaxErrorLine(err, script)
		return errors.ExitFailure, errors.Newf(errors.ErrHookExecution,
			"Error executing hook %q interpreted command %q line %d::\n\t%s",
			inv.Hook.Name, inv.Hook.Command, line, sourceLine(script, line)).
			WithDetail("hook", inv.Hook.Name).
			WithDetail("line", line)
	}

	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		msg := runtimeMessage(err)
		line := runtimeErrorLine(msg, path)
		fmt.Fprintf(b.stderr, "\nError executing hook %q interpreted command %q line %d: %s\n\t%s\n\n",
			inv.Hook.Name, inv.Hook.Command, line, msg, sourceLine(script, line))
		return 1, nil
	}
	return 0, nil
}

// syntaxErrorLine extracts the line number from a compile error. Errors at
// end of input point at the last line.
func syntaxErrorLine(err error, script []byte) int {
	if m := syntaxLinePattern.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			return n
		}
	}
	return strings.Count(strings.TrimRight(string(script), "\n"), "\n") + 1
}

// runtimeErrorLine reads the "<chunk>:<line>:" prefix Lua puts on errors
func runtimeErrorLine(msg, chunk string) int {
	re := regexp.MustCompile(regexp.QuoteMeta(chunk) + `:(\d+):`)
	if m := re.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

func runtimeMessage(err error) string {
	var apiErr *lua.ApiError
	if stderrors.As(err, &apiErr) && apiErr.Object != nil {
		return apiErr.Object.String()
	}
	return err.Error()
}

// sourceLine returns line n (1 based) of script, or "" when out of range
func sourceLine(script []byte, n int) string {
	lines := strings.Split(string(script), "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
