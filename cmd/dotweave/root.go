package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dotweave/internal/version"
	"github.com/arthur-debert/dotweave/pkg/commands/diffcmd"
	"github.com/arthur-debert/dotweave/pkg/commands/printvars"
	synccmd "github.com/arthur-debert/dotweave/pkg/commands/sync"
	"github.com/arthur-debert/dotweave/pkg/commands/watch"
	"github.com/arthur-debert/dotweave/pkg/config"
	"github.com/arthur-debert/dotweave/pkg/errors"
	"github.com/arthur-debert/dotweave/pkg/filesystem"
	"github.com/arthur-debert/dotweave/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity     int
	templateDir   string
	buildDir      string
	linkDir       string
	variablesPath string

	rootCmd = &cobra.Command{
		Use:   "dotweave",
		Short: "A templating dotfiles installer",
		Long: `dotweave renders a tree of templates and static files into a build
tree, then exposes the build tree in a target location (usually your
home directory) via symbolic links.

Positional arguments become boolean-true template bindings, so
"dotweave sync work laptop" makes {{.work}} and {{.laptop}} true.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&templateDir, "template-dir", "t", "", "Template source tree (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVarP(&buildDir, "build-dir", "b", "", "Build tree destination (default: XDG cache dir)")
	rootCmd.PersistentFlags().StringVarP(&linkDir, "link-dir", "l", "", "Link tree destination (default: $HOME)")
	rootCmd.PersistentFlags().StringVar(&variablesPath, "variables", "", "Variables file (default: variables.toml in the XDG config dir)")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildConfig resolves the run configuration: XDG defaults overridden
// field-by-field by flags, with the positional args bound as boolean
// template flags.
func buildConfig(args []string) (*config.Config, error) {
	cfg, err := config.Default()
	if err != nil {
		return nil, err
	}

	if templateDir != "" {
		cfg.TemplateDir = templateDir
	}
	if root := os.Getenv("DOTFILES_PATH"); root != "" && templateDir == "" {
		cfg.TemplateDir = root
	}
	if buildDir != "" {
		cfg.BuildDir = buildDir
	}
	if linkDir != "" {
		cfg.LinkDir = linkDir
	}
	if variablesPath != "" {
		cfg.VariablesPath = variablesPath
	}
	cfg.Flags = args

	return cfg, nil
}

// runCommand wraps a command body with config resolution and failure
// reporting. On any aggregated failure the full located-error report
// is printed; partial work already on disk stays in place.
func runCommand(fn func(cfg *config.Config) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		if err := fn(cfg); err != nil {
			printReport(err)
			return err
		}
		return nil
	}
}

var syncCmd = &cobra.Command{
	Use:   "sync [flag-bindings...]",
	Short: "Build the tree and link it into place",
	RunE: runCommand(func(cfg *config.Config) error {
		return synccmd.Sync(synccmd.Options{Config: cfg, FS: filesystem.NewOS()})
	}),
}

var diffCmd = &cobra.Command{
	Use:   "diff [flag-bindings...]",
	Short: "Build the tree and diff it against the linked state (not implemented)",
	RunE: runCommand(func(cfg *config.Config) error {
		return diffcmd.Diff(diffcmd.Options{Config: cfg, FS: filesystem.NewOS()})
	}),
}

var printCmd = &cobra.Command{
	Use:   "print [flag-bindings...]",
	Short: "Print every variable referenced by the template tree",
	RunE: runCommand(func(cfg *config.Config) error {
		return printvars.PrintVariables(printvars.Options{
			Config: cfg,
			FS:     filesystem.NewOS(),
			Out:    os.Stdout,
		})
	}),
}

var watchCmd = &cobra.Command{
	Use:   "watch [flag-bindings...]",
	Short: "Sync, then re-sync whenever the template tree changes",
	RunE: runCommand(func(cfg *config.Config) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := watch.Watch(ctx, watch.Options{
			Config:      cfg,
			FS:          filesystem.NewOS(),
			OnSyncError: printReport,
		})
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dotweave version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

// printReport writes the consolidated failure report to stderr
func printReport(err error) {
	var list *errors.List
	if stderrors.As(err, &list) {
		fmt.Fprintln(os.Stderr, renderReport(list))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
