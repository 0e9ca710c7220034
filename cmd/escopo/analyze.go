package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgomes/escopo/escopo"
)

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	var symbols bool
	cmd := &cobra.Command{
		Use:   "analyze [--symbols] <script>",
		Short: "Report problems a run would print or silently tolerate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("escopo analyze: script path required")
			}
			return analyzeScript(cmd, global, args[0], symbols)
		},
	}
	cmd.Flags().BoolVar(&symbols, "symbols", false, "also list every declaration with its block")
	return cmd
}

func analyzeScript(cmd *cobra.Command, global *globalOptions, path string, symbols bool) error {
	settings, err := global.loadSettings(scriptDir(path))
	if err != nil {
		return err
	}
	source, err := readSource(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	report, err := escopo.Analyze(source, settings.Interpreter())
	if err != nil {
		return err
	}

	name := path
	if path != "-" {
		if abs, err := filepath.Abs(path); err == nil {
			name = abs
		}
	}

	out := cmd.OutOrStdout()
	if symbols {
		for _, sym := range report.Symbols {
			fmt.Fprintf(out, "%s:%d: %s %s = %s (%s)\n", name, sym.Line, sym.Type, sym.Name, sym.Value, sym.Block)
		}
	}

	if !report.HasIssues() {
		fmt.Fprintln(out, "No issues found")
		return nil
	}

	for _, diag := range report.Diagnostics {
		line := max(diag.Pos.Line, 1)
		column := max(diag.Pos.Column, 1)
		fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", name, line, column, diag.Kind, diag.Message)
		if frame := diag.Frame(source); frame != "" {
			fmt.Fprintln(out, frame)
		}
	}

	return fmt.Errorf("analysis found %d issue(s)", len(report.Diagnostics))
}
