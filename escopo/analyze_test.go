package escopo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type diagSummary struct {
	Kind    DiagnosticKind
	Line    int
	Message string
}

func summarize(diags []*Diagnostic) []diagSummary {
	out := make([]diagSummary, len(diags))
	for i, d := range diags {
		out[i] = diagSummary{Kind: d.Kind, Line: d.Pos.Line, Message: d.Message}
	}
	return out
}

func TestAnalyzeReportsStructuralProblems(t *testing.T) {
	source := "NUMERO x = 1\n" +
		"BLOCO A\n" +
		"  NUMERO n = 1\n" +
		"  ??\n" +
		"  FIM B\n" +
		"  PRINT z\n" +
		"  BLOCO C\n" +
		"FIM A\n"

	report, err := Analyze(source, Config{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	want := []diagSummary{
		{DiagOutsideBlock, 1, "instrução fora de qualquer bloco não tem efeito"},
		{DiagUnclosedBlock, 2, "bloco A nunca é fechado"},
		{DiagUnrecognized, 4, "instrução não reconhecida: ??"},
		{DiagMismatchedClose, 5, "FIM B não fecha o bloco aberto A"},
		{DiagUndeclared, 6, "z não declarado"},
		{DiagUnclosedBlock, 7, "bloco C nunca é fechado"},
		{DiagMismatchedClose, 8, "FIM A não fecha o bloco aberto C"},
	}
	if diff := cmp.Diff(want, summarize(report.Diagnostics)); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	if !report.HasIssues() {
		t.Fatalf("expected issues")
	}

	wantSymbols := []Symbol{{Name: "n", Type: TypeNumber, Value: "1", Line: 3, Block: "A"}}
	if diff := cmp.Diff(wantSymbols, report.Symbols); diff != "" {
		t.Fatalf("symbols mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantSymbols, report.SymbolsAt(3)); diff != "" {
		t.Fatalf("symbols at line 3 mismatch (-want +got):\n%s", diff)
	}
	if got := report.SymbolsAt(1); len(got) != 0 {
		t.Fatalf("expected no symbols on line 1, got %#v", got)
	}
}

func TestAnalyzeCleanProgram(t *testing.T) {
	source := "BLOCO A\n  NUMERO n = 10\n  PRINT n\nFIM A\n"
	report, err := Analyze(source, Config{LineNumbers: true, ReportUnrecognized: true})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.HasIssues() {
		t.Fatalf("unexpected diagnostics: %#v", summarize(report.Diagnostics))
	}
	got := make([]string, len(report.Output))
	for i, ev := range report.Output {
		got[i] = ev.Text
	}
	if diff := cmp.Diff([]string{"*INICIO A*", "n = 10 em A", "*FIM A*"}, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeCloseWithoutBlock(t *testing.T) {
	report, err := Analyze("FIM A", Config{Locale: "en"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	want := []diagSummary{{DiagMismatchedClose, 1, "FIM A without an open block"}}
	if diff := cmp.Diff(want, summarize(report.Diagnostics)); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeRejectsBadConfig(t *testing.T) {
	if _, err := Analyze("", Config{Locale: "de"}); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}
