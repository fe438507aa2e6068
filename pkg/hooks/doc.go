// Package hooks runs the commands tags attach to operations.
//
// For every operation the engine calls Dispatcher.Run once with step "pre"
// and once with step "post". For each active tag the best matching hook is
// looked up (see manifest.Tag.FindHook) and handed to the Backend registered
// for its type:
//
//   - exec runs the command as an executable, with the operation, step and
//     tag name as arguments
//   - shell runs the command through /bin/sh -c
//   - interpreted runs the command file as a Lua script
//
// exec and shell hooks see the process environment plus HAMSTERCAGE_CMD,
// HAMSTERCAGE_MANIFEST, HAMSTERCAGE_HOOK, HAMSTERCAGE_REPO,
// HAMSTERCAGE_STEP and HAMSTERCAGE_TAG. Lua scripts get the same values as
// the globals cmd, manifest, hook, repo, step and tag.
//
// A failing exec or shell hook aborts the operation with HOOK_EXECUTION and
// the hook's exit code. A Lua runtime error is reported and counts as result
// 1: the remaining tags are skipped for that step but the operation goes on.
package hooks
