package cli

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/hamstercage/internal/version"
	"github.com/arthur-debert/hamstercage/pkg/cobrax/topics"
	"github.com/arthur-debert/hamstercage/pkg/config"
	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// Command groups
const (
	groupFiles    = "files"
	groupRegistry = "registry"
)

// NewRootCmd creates the root command writing to the process streams.
// It is used by the manpage generator.
func NewRootCmd() *cobra.Command {
	return newApp(os.Stdout, os.Stderr).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:           "hamstercage",
		Short:         MsgRootShort,
		Long:          MsgRootLong,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrUsage, MsgErrNoCommand)
		},
	}
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, MsgErrInvalidArgs)
	})
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.opts.directory, "directory", "d", "", MsgFlagDirectory)
	flags.StringVarP(&a.opts.file, "file", "f", "", MsgFlagFile)
	flags.StringVarP(&a.opts.hostname, "hostname", "n", "", MsgFlagHostname)
	flags.StringVarP(&a.opts.repo, "repo", "r", "", MsgFlagRepo)
	flags.StringArrayVarP(&a.opts.tags, "tag", "t", nil, MsgFlagTag)
	flags.CountVarP(&a.opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&a.opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&a.opts.color, "color", config.ColorAuto, MsgFlagColor)

	rootCmd.AddGroup(
		&cobra.Group{ID: groupFiles, Title: "FILES:"},
		&cobra.Group{ID: groupRegistry, Title: "MANIFEST:"},
	)

	for _, cmd := range []*cobra.Command{
		a.initCmd(),
		a.addCmd(),
		a.applyCmd(),
		a.diffCmd(),
		a.listCmd(),
		a.removeCmd(),
		a.saveCmd(),
	} {
		cmd.GroupID = groupFiles
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{a.tagCmd(), a.hostCmd()} {
		cmd.GroupID = groupRegistry
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(a.versionCmd(), a.completionCmd())

	a.initTopics(rootCmd)
	return rootCmd
}

// initTopics replaces the help command with one that also shows the
// embedded topics and the default configuration
func (a *app) initTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return
	}
	renderer := &topics.GlamourRenderer{}
	if !stdoutIsTerminal() {
		renderer.Style = "notty"
	}
	_, err = topics.Initialize(rootCmd, sub, topics.Options{
		Renderer: renderer,
		Extra:    map[string]string{"config": config.DefaultsContent()},
	})
	if err != nil {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Msg("Help topics unavailable")
	}
}
