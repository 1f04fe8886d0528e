// Package cli builds the dotlink command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/cobrax/topics"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/links"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/ui"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	format     string
	source     string
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotlink [links...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgLinkExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd, opts, args, false)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	initTemplateFormatting()
	rootCmd.SetUsageTemplate(usageTemplate)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	pf.StringVar(&opts.source, "source", "", MsgFlagSource)
	pf.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newLinkCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Initialize topics without logging (logging not set up yet)
	_ = topics.InitializeWithOptions(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})

	return rootCmd
}

// initPaths resolves the dotfiles root and warns if the working directory
// was used as fallback
func initPaths(cmd *cobra.Command, opts *globalOptions) (paths.Paths, error) {
	p, err := paths.New(opts.source)
	if err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "failed to initialize paths")
	}

	if p.UsedFallback() {
		pterm.Warning.WithWriter(cmd.ErrOrStderr()).Printfln(MsgFallbackWarning, p.SourceRoot())
	}
	return p, nil
}

// loadConfig loads configuration for the resolved root with flag overrides
func loadConfig(cmd *cobra.Command, opts *globalOptions, p paths.Paths) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = opts.format
	}

	configFile := opts.configFile
	if configFile != "" {
		normalized, err := p.NormalizePath(configFile)
		if err != nil {
			return nil, err
		}
		configFile = normalized
	}

	return config.Load(config.LoadOptions{
		SourceRoot: p.SourceRoot(),
		ConfigFile: configFile,
		Overrides:  overrides,
	})
}

func newRenderer(cmd *cobra.Command, cfg *config.Config) (ui.Renderer, error) {
	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// runLinks drives link (inspect=false) and status (inspect=true)
func runLinks(cmd *cobra.Command, opts *globalOptions, names []string, inspect bool) error {
	logger := logging.GetLogger("cli")

	p, err := initPaths(cmd, opts)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, opts, p)
	if err != nil {
		return err
	}

	logger.Info().
		Str("source_root", p.SourceRoot()).
		Str("config", cfg.File).
		Bool("dry_run", opts.dryRun).
		Strs("names", names).
		Msg("Resolving links")

	pairs, err := links.Resolve(cfg, p)
	if err != nil {
		return err
	}
	pairs, err = links.Select(pairs, names)
	if err != nil {
		return err
	}

	renderer, err := newRenderer(cmd, cfg)
	if err != nil {
		return err
	}

	runner := links.NewRunner(links.RunnerOptions{
		DryRun:        opts.dryRun,
		CreateParents: cfg.CreateParents,
	})

	var report *links.Report
	if inspect {
		report = runner.Status(pairs)
	} else {
		report = runner.Run(pairs)
	}

	if err := renderer.RenderReport(report); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render report")
	}
	return report.Err()
}

func newLinkCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "link [links...]",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd, opts, args, false)
		},
	}
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status [links...]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd, opts, args, true)
		},
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var (
		commented bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths(cmd, opts)
			if err != nil {
				return err
			}

			var content []byte
			if commented {
				content = []byte(config.GenerateCommented())
			} else {
				cfg, err := loadConfig(cmd, opts, p)
				if err != nil {
					return err
				}
				if content, err = config.GenerateTOML(cfg); err != nil {
					return err
				}
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(content)
				return err
			}

			dest := filepath.Join(p.SourceRoot(), config.ConfigFileNames[0])
			if _, err := os.Lstat(dest); err == nil {
				return errors.Newf(errors.ErrInvalidInput, "%s already exists", dest).
					WithDetail("path", dest)
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", dest).
					WithOSError(err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, dest)
			return err
		},
	}

	cmd.Flags().BoolVar(&commented, "commented", false, MsgFlagCommented)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(dotlink completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ dotlink completion zsh > "${fpath[1]}/_dotlink"

Fish:
  $ dotlink completion fish > ~/.config/fish/completions/dotlink.fish

PowerShell:
  PS> dotlink completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man <dir>",
		Short:  MsgManShort,
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to create %s", dir).
					WithOSError(err)
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to generate man pages")
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten, dir)
			return err
		},
	}
}

// ManHeader is the header used for generated man pages
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "DOTLINK",
		Section: "1",
		Source:  "dotlink " + version.Version,
		Manual:  "dotlink manual",
	}
}
