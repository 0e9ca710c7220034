package escopo

import "testing"

func TestFormatCodeFrameUnderlinesStatement(t *testing.T) {
	source := "BLOCO A\n  PRINT z\nFIM A"
	want := "2 |   PRINT z\n  |   ^^^^^^^"
	if got := FormatCodeFrame(source, Position{Line: 2, Column: 3}); got != want {
		t.Fatalf("unexpected frame:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatCodeFrameClampsColumn(t *testing.T) {
	got := FormatCodeFrame("PRINT z  ", Position{Line: 1, Column: 40})
	want := "1 | PRINT z\n  |        ^"
	if got != want {
		t.Fatalf("unexpected frame:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatCodeFrameOutOfRange(t *testing.T) {
	if got := FormatCodeFrame("PRINT z", Position{Line: 3, Column: 1}); got != "" {
		t.Fatalf("expected empty frame, got %q", got)
	}
	if got := FormatCodeFrame("", Position{Line: 1, Column: 1}); got != "" {
		t.Fatalf("expected empty frame, got %q", got)
	}
}

func TestDiagnosticFrameUnderlinesSubject(t *testing.T) {
	source := "BLOCO A\n  PRINT z\nFIM A\n"
	diag := &Diagnostic{Kind: DiagUndeclared, Pos: Position{Line: 2, Column: 3}, Subject: "z"}
	want := "2 |   PRINT z\n  |         ^"
	if got := diag.Frame(source); got != want {
		t.Fatalf("unexpected frame:\n%s\nwant:\n%s", got, want)
	}
}

func TestDiagnosticFrameKeepsTabs(t *testing.T) {
	diag := &Diagnostic{Pos: Position{Line: 1, Column: 2}, Subject: "total"}
	want := "1 | \tPRINT total\n  | \t      ^^^^^"
	if got := diag.Frame("\tPRINT total"); got != want {
		t.Fatalf("unexpected frame:\n%q\nwant:\n%q", got, want)
	}
}

func TestDiagnosticSpan(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		diag      Diagnostic
		wantStart int
		wantEnd   int
	}{
		{
			name:      "subject as whole word",
			source:    "PRINT I",
			diag:      Diagnostic{Pos: Position{Line: 1, Column: 1}, Subject: "I"},
			wantStart: 7,
			wantEnd:   8,
		},
		{
			name:      "copy source after target",
			source:    "BLOCO A\n  x = y",
			diag:      Diagnostic{Pos: Position{Line: 2, Column: 3}, Subject: "y"},
			wantStart: 7,
			wantEnd:   8,
		},
		{
			name:      "invalid literal",
			source:    "  n = 5abc",
			diag:      Diagnostic{Pos: Position{Line: 1, Column: 3}, Subject: "5abc"},
			wantStart: 7,
			wantEnd:   11,
		},
		{
			name:      "block label",
			source:    "BLOCO A",
			diag:      Diagnostic{Pos: Position{Line: 1, Column: 1}, Subject: "A"},
			wantStart: 7,
			wantEnd:   8,
		},
		{
			name:      "subject missing from line",
			source:    "  NUMERO x = 1  ",
			diag:      Diagnostic{Pos: Position{Line: 1, Column: 3}, Subject: "nope"},
			wantStart: 3,
			wantEnd:   15,
		},
		{
			name:      "counts runes",
			source:    "  PRINT ação",
			diag:      Diagnostic{Pos: Position{Line: 1, Column: 3}, Subject: "PRINT ação"},
			wantStart: 3,
			wantEnd:   13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := tt.diag.Span(tt.source)
			if !ok {
				t.Fatalf("expected span for %q", tt.source)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("span = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}

	if _, _, ok := (&Diagnostic{Pos: Position{Line: 4}}).Span("PRINT z"); ok {
		t.Fatalf("expected no span outside source")
	}
}
