package escopo

import "sort"

// Symbol is a variable declaration observed during analysis.
type Symbol struct {
	Name  string
	Type  Type
	Value string
	Line  int
	Block string
}

// Report is the result of Analyze.
type Report struct {
	Diagnostics []*Diagnostic
	Symbols     []Symbol
	Output      []Event
}

// HasIssues reports whether any diagnostic was found.
func (r *Report) HasIssues() bool {
	return len(r.Diagnostics) > 0
}

// SymbolsAt returns the symbols declared on line, in declaration order.
func (r *Report) SymbolsAt(line int) []Symbol {
	var out []Symbol
	for _, sym := range r.Symbols {
		if sym.Line == line {
			out = append(out, sym)
		}
	}
	return out
}

// Analyze executes source in a fresh interpreter and collects everything a
// run would report, plus problems a run silently tolerates: unrecognized
// lines, closes that do not match the innermost block, statements outside
// any block and blocks left open at the end of input.
func Analyze(source string, cfg Config) (*Report, error) {
	cfg.LineNumbers = false
	cfg.ReportUnrecognized = false
	rec := &Recorder{}
	in, err := NewInterpreter(cfg, rec)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	in.declared = func(tok Token, block string) {
		report.Symbols = append(report.Symbols, Symbol{
			Name:  tok.Name,
			Type:  tok.Type,
			Value: tok.Value,
			Line:  tok.Line,
			Block: block,
		})
	}

	var found []*Diagnostic
	add := func(kind DiagnosticKind, pos Position, subject, key string, args ...any) {
		found = append(found, &Diagnostic{
			Kind:    kind,
			Pos:     pos,
			Subject: subject,
			Message: in.text.sprintf(key, args...),
		})
	}

	for _, line := range SplitLines(source) {
		depth := in.Depth()
		current, _ := in.CurrentBlock()
		stmt := in.Exec(line)
		switch s := stmt.(type) {
		case *DeclareStmt, *CopyStmt, *AssignStmt:
			if depth == 0 {
				add(DiagOutsideBlock, s.Pos(), "", msgStatementNoBlock)
			}
		case *UnrecognizedStmt:
			switch {
			case s.Text == "":
			case in.grammar.isCloseAttempt(s.Text) && depth == 0:
				add(DiagMismatchedClose, s.Pos(), s.Text, msgCloseWithoutBlock, s.Text)
			case in.grammar.isCloseAttempt(s.Text):
				add(DiagMismatchedClose, s.Pos(), s.Text, msgMismatchedClose, s.Text, current)
			default:
				add(DiagUnrecognized, s.Pos(), s.Text, msgUnrecognized, s.Text)
			}
		}
	}

	labels := in.blocks.Labels()
	for i, label := range labels {
		add(DiagUnclosedBlock, Position{Line: in.blocks.openedAt(i), Column: 1}, label, msgUnclosedBlock, label)
	}

	found = append(found, rec.Diagnostics()...)
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Pos.Line != found[j].Pos.Line {
			return found[i].Pos.Line < found[j].Pos.Line
		}
		return found[i].Pos.Column < found[j].Pos.Column
	})
	report.Diagnostics = found
	report.Output = rec.Events
	return report, nil
}
