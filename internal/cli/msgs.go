package cli

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Manage configuration files across hosts"
	MsgInitShort       = "Create a new manifest"
	MsgAddShort        = "Add one or more files to the manifest"
	MsgApplyShort      = "Apply files from the repository to the target"
	MsgDiffShort       = "Print differences between repository and target"
	MsgListShort       = "List manifest entries"
	MsgRemoveShort     = "Remove one or more files from the manifest"
	MsgSaveShort       = "Save target files to the repository"
	MsgTagShort        = "Manage tags in the manifest"
	MsgTagAddShort     = "Create a tag"
	MsgTagListShort    = "List tags"
	MsgHostShort       = "Manage hosts in the manifest"
	MsgHostAddShort    = "Create a host entry selecting tags"
	MsgHostListShort   = "List hosts"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagDirectory   = "base directory of target files"
	MsgFlagFile        = "manifest file to use (relative to the repository)"
	MsgFlagHostname    = "name of this host"
	MsgFlagRepo        = "directory of the file repository"
	MsgFlagTag         = "tag to work on; repeat for several tags"
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "config file (default is $XDG_CONFIG_HOME/hamstercage/config.toml)"
	MsgFlagColor       = "colorize output: auto, always or never"
	MsgFlagAddForce    = "overwrite existing entries"
	MsgFlagSaveForce   = "add paths that are not in the manifest to the first active tag"
	MsgFlagHostForce   = "replace an existing host entry"
	MsgFlagLong        = "list in long format"
	MsgFlagTabs        = "separate columns with tabs instead of spaces"
	MsgFlagDescription = "description"

	// Output
	MsgVersionFormat = "hamstercage version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand   = "no command specified"
	MsgErrUnknownCmd  = "unknown command"
	MsgErrInvalidArgs = "invalid arguments"
)

//go:embed msgs/*.txt
var msgFiles embed.FS

func msg(name string) string {
	data, err := msgFiles.ReadFile("msgs/" + name + ".txt")
	if err != nil {
		panic("missing message " + name)
	}
	return strings.TrimSpace(string(data))
}

// Long messages from embedded files
var (
	MsgRootLong       = msg("root-long")
	MsgAddLong        = msg("add-long")
	MsgAddExample     = msg("add-example")
	MsgApplyLong      = msg("apply-long")
	MsgDiffLong       = msg("diff-long")
	MsgListLong       = msg("list-long")
	MsgSaveLong       = msg("save-long")
	MsgCompletionLong = msg("completion-long")
	MsgUsageTemplate  = msg("usage-template")
)
