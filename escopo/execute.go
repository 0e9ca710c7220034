package escopo

import "strconv"

const defaultValue = "0"

func (in *Interpreter) execute(stmt Statement) {
	switch s := stmt.(type) {
	case *BlockOpenStmt:
		in.blocks.Open(s.Label, s.Pos().Line)
		in.log.Debugf("line %d: open block %s (depth %d)", s.Pos().Line, s.Label, in.blocks.Depth())
		in.emit(EventBlockEntered, s.Pos(), in.text.sprintf(msgBlockEntered, s.Label))
	case *BlockCloseStmt:
		if in.scopes.Depth() == 0 {
			return
		}
		label, ok := in.blocks.Close()
		if !ok {
			return
		}
		in.log.Debugf("line %d: close block %s (depth %d)", s.Pos().Line, label, in.blocks.Depth())
		in.emit(EventBlockExited, s.Pos(), in.text.sprintf(msgBlockExited, label))
	case *DeclareStmt:
		in.execDeclare(s)
	case *CopyStmt:
		in.execCopy(s)
	case *AssignStmt:
		in.execAssign(s)
	case *PrintStmt:
		in.execPrint(s)
	case *UnrecognizedStmt:
		if s.Text != "" && in.config.ReportUnrecognized {
			in.diagnose(DiagUnrecognized, s.Pos(), s.Text, msgUnrecognized, s.Text)
		}
	}
}

func (in *Interpreter) execDeclare(s *DeclareStmt) {
	if in.scopes.Depth() == 0 {
		in.log.Debugf("line %d: declaration outside any block ignored", s.Pos().Line)
		return
	}
	for _, decl := range s.Decls {
		if in.scopes.ExistsInCurrentScope(decl.Name) {
			continue
		}
		value := defaultValue
		if decl.HasValue {
			value = decl.Value
		}
		in.declare(s.Type, decl.Name, value, s.Pos().Line)
	}
}

func (in *Interpreter) execCopy(s *CopyStmt) {
	if in.scopes.Depth() == 0 {
		in.log.Debugf("line %d: assignment outside any block ignored", s.Pos().Line)
		return
	}
	src, ok := in.scopes.Lookup(s.Source)
	if !ok {
		in.diagnose(DiagUndeclared, s.Pos(), s.Source, msgUndeclared, s.Source)
		return
	}
	dst, ok := in.scopes.Lookup(s.Target)
	switch {
	case !ok:
		in.declare(src.Type, s.Target, src.Value, s.Pos().Line)
	case dst.Type != src.Type:
		in.diagnose(DiagInvalidAssignment, s.Pos(), s.Target, msgInvalidAssignment, s.Target)
	default:
		in.scopes.Assign(s.Target, src.Value)
	}
}

func (in *Interpreter) execAssign(s *AssignStmt) {
	if in.scopes.Depth() == 0 {
		in.log.Debugf("line %d: assignment outside any block ignored", s.Pos().Line)
		return
	}
	typ, valid := literalType(s.Literal)
	dst, ok := in.scopes.Lookup(s.Target)
	if !ok {
		if !valid {
			in.diagnose(DiagInvalidLiteral, s.Pos(), s.Literal, msgInvalidLiteral)
			return
		}
		in.declare(typ, s.Target, s.Literal, s.Pos().Line)
		return
	}
	if !valid || typ != dst.Type {
		in.diagnose(DiagInvalidAssignment, s.Pos(), s.Target, msgInvalidAssignment, s.Target)
		return
	}
	in.scopes.Assign(s.Target, s.Literal)
}

func (in *Interpreter) execPrint(s *PrintStmt) {
	tok, ok := in.scopes.Lookup(s.Name)
	if !ok {
		in.diagnose(DiagUndeclared, s.Pos(), s.Name, msgUndeclared, s.Name)
		return
	}
	label, _ := in.blocks.CurrentLabel()
	in.emit(EventPrint, s.Pos(), in.text.sprintf(msgPrint, s.Name, tok.Value, label))
}

func (in *Interpreter) declare(typ Type, name, value string, line int) {
	if !in.scopes.Declare(typ, name, value, line) {
		return
	}
	label, _ := in.blocks.CurrentLabel()
	in.log.Debugf("line %d: declare %s %s = %s in %s", line, typ, name, value, label)
	if in.declared != nil {
		tok, _ := in.scopes.Lookup(name)
		in.declared(tok, label)
	}
}

func (in *Interpreter) diagnose(kind DiagnosticKind, pos Position, subject, key string, args ...any) {
	msg := in.text.sprintf(key, args...)
	text := msg
	if in.config.LineNumbers {
		text = in.text.sprintf(msgLinePrefix, strconv.Itoa(pos.Line), msg)
	}
	in.emit(EventDiagnostic, pos, text, &Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Subject: subject,
		Message: msg,
	})
}

func (in *Interpreter) emit(kind EventKind, pos Position, text string, diag ...*Diagnostic) {
	ev := Event{Kind: kind, Pos: pos, Text: text}
	if len(diag) > 0 {
		ev.Diagnostic = diag[0]
	}
	in.sink.Emit(ev)
}
