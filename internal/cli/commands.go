package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/hamstercage/internal/version"
	"github.com/arthur-debert/hamstercage/pkg/engine"
	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/ui"
	"github.com/spf13/cobra"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.init")
			logging.LogCommand(logger, "init", args)

			_, err := engine.Init(engine.InitOptions{
				FS:       a.fs,
				File:     a.cfg.ManifestPath(),
				Hostname: a.cfg.Hostname,
			})
			return err
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "add <tag> <files...>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		Args:    usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.add")
			logging.LogCommand(logger, "add", args)

			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := eng.Add(cmd.Context(), engine.AddOptions{
				Tag:   args[0],
				Files: args[1:],
				Force: force,
			})
			if err != nil {
				return err
			}
			logger.Info().Int("entries", len(result.Entries)).Msg("Files added")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagAddForce)
	return cmd
}

func (a *app) applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply [files...]",
		Short: MsgApplyShort,
		Long:  MsgApplyLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.apply")
			logging.LogCommand(logger, "apply", args)

			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := eng.Apply(cmd.Context(), a.scope(args))
			if result != nil {
				a.warn(result.Warnings)
			}
			if err != nil {
				return err
			}
			logger.Info().Int("entries", len(result.Applied)).Msg("Entries applied")
			return nil
		},
	}
}

func (a *app) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff [files...]",
		Short: MsgDiffShort,
		Long:  MsgDiffLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.diff")
			logging.LogCommand(logger, "diff", args)

			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			out := a.outPrinter().DiffWriter()
			result, err := eng.Diff(cmd.Context(), a.scope(args), out)
			if flushErr := out.Flush(); err == nil && flushErr != nil {
				err = errors.Wrap(flushErr, errors.ErrFileAccess, "cannot write diff")
			}
			if result != nil {
				a.warn(result.Warnings)
			}
			if err != nil {
				return err
			}
			if result.HasDifferences {
				return exitStatus(1)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var long, tabs bool
	cmd := &cobra.Command{
		Use:     "list [files...]",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.list")
			logging.LogCommand(logger, "list", args)

			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := eng.List(cmd.Context(), a.scope(args))
			if result != nil {
				a.warn(result.Warnings)
			}
			if err != nil {
				return err
			}
			return ui.PrintList(a.stdout, result.Rows, long, tabs, time.Now())
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, MsgFlagLong)
	cmd.Flags().BoolVar(&tabs, "tabs", false, MsgFlagTabs)
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <tag> <files...>",
		Aliases: []string{"rm", "del"},
		Short:   MsgRemoveShort,
		Args:    usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.remove")
			logging.LogCommand(logger, "remove", args)

			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := eng.Remove(cmd.Context(), engine.RemoveOptions{
				Tag:   args[0],
				Files: args[1:],
			})
			if err != nil {
				return err
			}
			logger.Info().Int("entries", len(result.Removed)).Msg("Entries removed")
			return nil
		},
	}
}

func (a *app) saveCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "save [files...]",
		Short: MsgSaveShort,
		Long:  MsgSaveLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.save")
			logging.LogCommand(logger, "save", args)

			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			result, err := eng.Save(cmd.Context(), engine.SaveOptions{
				Scope: a.scope(args),
				Force: force,
			})
			if result != nil {
				a.warn(result.Warnings)
			}
			if err != nil {
				return err
			}
			logger.Info().
				Int("saved", len(result.Saved)).
				Int("added", len(result.Added)).
				Msg("Entries saved")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagSaveForce)
	return cmd
}

func (a *app) tagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: MsgTagShort,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrUsage, MsgErrNoCommand)
		},
	}

	var description string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: MsgTagAddShort,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			_, err = eng.CreateTag(args[0], description)
			return err
		},
	}
	addCmd.Flags().StringVar(&description, "description", "", MsgFlagDescription)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgTagListShort,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, name := range m.TagNames() {
				tag := m.Tags[name]
				rows = append(rows, []string{name, fmt.Sprintf("%d", len(tag.Entries)), tag.Description})
			}
			return ui.PrintTable(a.stdout, rows, []ui.Align{ui.AlignLeft, ui.AlignRight, ui.AlignLeft}, false)
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func (a *app) hostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: MsgHostShort,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrUsage, MsgErrNoCommand)
		},
	}

	var (
		description string
		force       bool
	)
	addCmd := &cobra.Command{
		Use:   "add <name> <tags...>",
		Short: MsgHostAddShort,
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.loadEngine()
			if err != nil {
				return err
			}
			_, err = eng.CreateHost(engine.HostOptions{
				Name:        args[0],
				Description: description,
				Tags:        args[1:],
				Force:       force,
			})
			return err
		},
	}
	addCmd.Flags().StringVar(&description, "description", "", MsgFlagDescription)
	addCmd.Flags().BoolVar(&force, "force", false, MsgFlagHostForce)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgHostListShort,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, name := range m.HostNames() {
				host := m.Hosts[name]
				rows = append(rows, []string{name, strings.Join(host.Tags, ","), host.Description})
			}
			return ui.PrintTable(a.stdout, rows, nil, false)
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func (a *app) completionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(a.stdout, true)
			case "zsh":
				return root.GenZshCompletion(a.stdout)
			case "fish":
				return root.GenFishCompletion(a.stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(a.stdout)
			}
		},
	}
}
