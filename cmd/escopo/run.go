package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgomes/escopo/config"
	"github.com/mgomes/escopo/escopo"
)

type runOptions struct {
	global             *globalOptions
	locale             string
	lineNumbers        bool
	reportUnrecognized bool
	outputDir          string
	dumpState          string
	color              bool
	watch              bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{global: global}
	cmd := &cobra.Command{
		Use:   "run [flags] <script|->",
		Short: "Execute a script line by line",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("escopo run: script path required")
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				if args[0] == "-" {
					return errors.New("escopo run: --watch needs a script file, not stdin")
				}
				return watchScript(cmd.Context(), args[0], func() error {
					return runScript(cmd, opts, args[0])
				}, func(err error) {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				})
			}
			return runScript(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.locale, "locale", "", "output language (pt or en)")
	flags.BoolVar(&opts.lineNumbers, "line-numbers", false, "prefix diagnostics with their line number")
	flags.BoolVar(&opts.reportUnrecognized, "report-unrecognized", false, "report lines that match no statement form")
	flags.StringVar(&opts.outputDir, "output-dir", "", "also write the transcript to DIR/<script>.out")
	flags.StringVar(&opts.dumpState, "dump-state", "", "write the final interpreter state to FILE (CBOR)")
	flags.BoolVar(&opts.color, "color", false, "colorize output")
	flags.BoolVar(&opts.watch, "watch", false, "run again whenever the script changes")
	return cmd
}

// interpreterConfig merges flags that were set explicitly over settings.
func (o *runOptions) interpreterConfig(cmd *cobra.Command, settings *config.Settings) escopo.Config {
	cfg := settings.Interpreter()
	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = o.locale
	}
	if flags.Changed("line-numbers") {
		cfg.LineNumbers = o.lineNumbers
	}
	if flags.Changed("report-unrecognized") {
		cfg.ReportUnrecognized = o.reportUnrecognized
	}
	return cfg
}

func runScript(cmd *cobra.Command, opts *runOptions, path string) error {
	settings, err := opts.global.loadSettings(scriptDir(path))
	if err != nil {
		return err
	}
	source, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	color := settings.Output.Color
	if cmd.Flags().Changed("color") {
		color = opts.color
	}
	var console escopo.Sink
	var consoleErr func() error
	if color {
		s := newStyledSink(cmd.OutOrStdout())
		console, consoleErr = s, s.Err
	} else {
		s := escopo.NewWriterSink(cmd.OutOrStdout())
		console, consoleErr = s, s.Err
	}
	sinks := escopo.MultiSink{console}

	outputDir := settings.OutputDir()
	if opts.outputDir != "" {
		outputDir = opts.outputDir
	}
	var transcript *escopo.WriterSink
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		file, err := os.Create(transcriptPath(outputDir, path))
		if err != nil {
			return fmt.Errorf("create transcript: %w", err)
		}
		defer file.Close()
		transcript = escopo.NewWriterSink(file)
		sinks = append(sinks, transcript)
	}

	in, err := escopo.NewInterpreter(opts.interpreterConfig(cmd, settings), sinks)
	if err != nil {
		return err
	}
	in.RunString(source)

	if err := consoleErr(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if transcript != nil {
		if err := transcript.Err(); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}
	if opts.dumpState != "" {
		if err := dumpState(opts.dumpState, in.Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

func readSource(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// transcriptPath names the transcript after the script without its
// extension: prog.esc becomes DIR/prog.out.
func transcriptPath(dir, script string) string {
	base := "stdin"
	if script != "-" {
		base = strings.TrimSuffix(filepath.Base(script), filepath.Ext(script))
	}
	return filepath.Join(dir, base+".out")
}

func dumpState(path string, snap escopo.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create state file: %w", err)
	}
	if err := escopo.EncodeSnapshot(file, snap); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}
	return nil
}

func loadState(path string) (escopo.Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return escopo.Snapshot{}, fmt.Errorf("open state file: %w", err)
	}
	defer file.Close()
	return escopo.DecodeSnapshot(file)
}
