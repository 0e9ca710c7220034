package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgomes/escopo/config"
)

type globalOptions struct {
	configPath string
	verbose    int
	logFile    string
}

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "escopo",
		Short:         "Run and inspect block-scoped escopo programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errors.New("invalid command: a subcommand is required")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to an escopo.toml file (default: search upwards from the script)")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		newRunCmd(opts),
		newREPLCmd(opts),
		newFmtCmd(opts),
		newAnalyzeCmd(opts),
		newLSPCmd(opts),
	)
	return root
}

// loadSettings resolves the configuration for a command. An explicit
// --config wins; otherwise escopo.toml is searched for upwards from dir.
func (o *globalOptions) loadSettings(dir string) (*config.Settings, error) {
	var (
		settings *config.Settings
		err      error
	)
	if o.configPath != "" {
		settings, err = config.LoadFile(o.configPath)
	} else {
		settings, err = config.FindAndLoad(dir)
	}
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = config.Default()
	}
	configureLogging(o, settings)
	return settings, nil
}

// scriptDir returns the directory configuration lookup starts from.
func scriptDir(path string) string {
	if path == "" || path == "-" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Dir(path)
	}
	info, err := os.Stat(abs)
	if err == nil && info.IsDir() {
		return abs
	}
	return filepath.Dir(abs)
}
