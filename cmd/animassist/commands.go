package animassist

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lmcintyre/AnimAssist/internal/version"
	"github.com/lmcintyre/AnimAssist/pkg/commands/extract"
	"github.com/lmcintyre/AnimAssist/pkg/commands/inspect"
	"github.com/lmcintyre/AnimAssist/pkg/commands/pack"
	"github.com/lmcintyre/AnimAssist/pkg/config"
	"github.com/lmcintyre/AnimAssist/pkg/filesystem"
	"github.com/lmcintyre/AnimAssist/pkg/havok"
	"github.com/lmcintyre/AnimAssist/pkg/logging"
	"github.com/lmcintyre/AnimAssist/pkg/ui"
)

// toolFactory builds the external tool from its configuration.
type toolFactory func(cfg config.ToolConfig) havok.Tool

func newExecTool(cfg config.ToolConfig) havok.Tool {
	return havok.NewExecTool(havok.ExecOptions{
		Path:     cfg.Path,
		Launcher: cfg.Launcher,
		WorkDir:  cfg.WorkDir,
		Keep:     cfg.Keep,
		Timeout:  cfg.Timeout,
	})
}

// session is the state shared by every subcommand of one invocation.
type session struct {
	newTool  toolFactory
	fs       filesystem.FS
	cfg      *config.Config
	renderer *ui.Renderer
	dryRun   bool
}

func (s *session) tool() havok.Tool {
	return s.newTool(s.cfg.Tool)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(newExecTool, filesystem.NewOS())
}

func newRootCmd(newTool toolFactory, fsys filesystem.FS) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		configFile string
		format     string
	)
	s := &session{newTool: newTool, fs: fsys}

	rootCmd := &cobra.Command{
		Use:     "animassist",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts := config.LoadOptions{ConfigFile: configFile, Overrides: map[string]interface{}{}}
			if cmd.Flags().Changed("format") {
				opts.Overrides["output.format"] = format
			}
			cfg, err := config.Load(opts)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			s.cfg = cfg

			logging.SetupLogger(verbosity, cfg.Log.File)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			f, err := ui.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			s.renderer = ui.NewRenderer(cmd.OutOrStdout(), ui.Resolve(f, os.Stdout))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&s.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newExtractCmd(s))
	rootCmd.AddCommand(newPackCmd(s))
	rootCmd.AddCommand(newInspectCmd(s))
	rootCmd.AddCommand(newConfigCmd(s))
	rootCmd.AddCommand(newFormatsCmd(s))
	rootCmd.AddCommand(newVersionCmd(s))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newExtractCmd(s *session) *cobra.Command {
	var (
		skeletonPath  string
		animationPath string
		outputPath    string
		index         int
	)

	cmd := &cobra.Command{
		Use:     "extract",
		Short:   MsgExtractShort,
		Long:    MsgExtractLong,
		Example: MsgExtractExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("skeleton", skeletonPath).
				Str("animation", animationPath).
				Int("index", index).
				Bool("dry_run", s.dryRun).
				Msg("Extracting animation")

			result, err := extract.Extract(cmd.Context(), extract.ExtractOptions{
				FS:            s.fs,
				Tool:          s.tool(),
				SkeletonPath:  skeletonPath,
				AnimationPath: animationPath,
				OutputPath:    outputPath,
				Selection:     index,
				DryRun:        s.dryRun,
			})
			if err != nil {
				return err
			}
			return s.renderer.Render(extractView(result))
		},
	}

	cmd.Flags().StringVarP(&skeletonPath, "skeleton", "s", "", MsgFlagSkeleton)
	cmd.Flags().StringVarP(&animationPath, "animation", "p", "", MsgFlagAnimation)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", MsgFlagOutput)
	cmd.Flags().IntVar(&index, "index", extract.NoSelection, MsgFlagIndex)
	_ = cmd.MarkFlagRequired("skeleton")
	_ = cmd.MarkFlagRequired("animation")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func newPackCmd(s *session) *cobra.Command {
	var (
		skeletonPath  string
		animationPath string
		modifiedPath  string
		outputPath    string
	)

	cmd := &cobra.Command{
		Use:     "pack",
		Short:   MsgPackShort,
		Long:    MsgPackLong,
		Example: MsgPackExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("skeleton", skeletonPath).
				Str("animation", animationPath).
				Str("modified", modifiedPath).
				Bool("dry_run", s.dryRun).
				Msg("Packing animation")

			result, err := pack.Pack(cmd.Context(), pack.PackOptions{
				FS:            s.fs,
				Tool:          s.tool(),
				SkeletonPath:  skeletonPath,
				AnimationPath: animationPath,
				ModifiedPath:  modifiedPath,
				OutputPath:    outputPath,
				DryRun:        s.dryRun,
			})
			if err != nil {
				return err
			}
			return s.renderer.Render(packView(result))
		},
	}

	cmd.Flags().StringVarP(&skeletonPath, "skeleton", "s", "", MsgFlagSkeleton)
	cmd.Flags().StringVarP(&animationPath, "animation", "p", "", MsgFlagAnimation)
	cmd.Flags().StringVarP(&modifiedPath, "modified", "a", "", MsgFlagModified)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", MsgFlagOutput)
	for _, name := range []string{"skeleton", "animation", "modified", "output"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newInspectCmd(s *session) *cobra.Command {
	var skeletonPath, animationPath string

	cmd := &cobra.Command{
		Use:     "inspect",
		Short:   MsgInspectShort,
		Long:    MsgInspectLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := inspect.Inspect(inspect.InspectOptions{
				FS:            s.fs,
				SkeletonPath:  skeletonPath,
				AnimationPath: animationPath,
			})
			if err != nil {
				return err
			}
			return s.renderer.Render(inspectView(result))
		},
	}

	cmd.Flags().StringVarP(&skeletonPath, "skeleton", "s", "", MsgFlagSkeleton)
	cmd.Flags().StringVarP(&animationPath, "animation", "p", "", MsgFlagAnimation)
	cmd.MarkFlagsOneRequired("skeleton", "animation")

	return cmd
}

func newConfigCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.renderer.Format().Structured() {
				return s.renderer.Render(ui.Document{Data: s.cfg})
			}
			data, err := s.cfg.ToTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newFormatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "formats",
		Short:   MsgFormatsShort,
		Long:    MsgFormatsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.NewMarkdownRenderer().Render(formatsReference, s.renderer.Format())
			_, err := fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

func newVersionCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: version.Version, Commit: version.Commit, Date: version.Date}
			if s.renderer.Format().Structured() {
				return s.renderer.Render(ui.Document{Data: info})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "animassist %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
