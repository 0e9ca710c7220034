package escopo

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	identPattern  = `[A-Za-z_][A-Za-z0-9_]*`
	numberPattern = `[+-]?\d+(?:\.\d+)?`
	stringPattern = `"[^"]*"`
	partPattern   = identPattern + `(?:\s*=\s*(?:` + numberPattern + `|` + stringPattern + `))?`
)

var (
	numberLiteral  = regexp.MustCompile(`^` + numberPattern + `$`)
	stringLiteral  = regexp.MustCompile(`^` + stringPattern + `$`)
	identLiteral   = regexp.MustCompile(`^` + identPattern + `$`)
	copyForm       = regexp.MustCompile(`^(` + identPattern + `)\s*=\s*(` + identPattern + `)$`)
	literalForm    = regexp.MustCompile(`^(` + identPattern + `)\s*=\s*(\S.*)$`)
	declaratorPart = regexp.MustCompile(`(` + identPattern + `)(?:\s*=\s*(` + numberPattern + `|` + stringPattern + `))?`)
)

// literalType infers the type of a literal from its shape.
func literalType(lit string) (Type, bool) {
	switch {
	case numberLiteral.MatchString(lit):
		return TypeNumber, true
	case stringLiteral.MatchString(lit):
		return TypeString, true
	default:
		return 0, false
	}
}

// grammar holds the patterns built from one set of keyword spellings.
type grammar struct {
	kw         Keywords
	declared   map[Type]*regexp.Regexp
	undeclared map[Type]*regexp.Regexp
	print      *regexp.Regexp
}

func newGrammar(kw Keywords) *grammar {
	g := &grammar{
		kw:         kw,
		declared:   make(map[Type]*regexp.Regexp, 2),
		undeclared: make(map[Type]*regexp.Regexp, 2),
		print:      regexp.MustCompile(`^` + regexp.QuoteMeta(kw.Print) + `\s+(` + identPattern + `)$`),
	}
	for _, t := range []Type{TypeNumber, TypeString} {
		word := regexp.QuoteMeta(kw.TypeKeyword(t))
		g.declared[t] = regexp.MustCompile(`^` + word + `\s+(` + partPattern + `(?:\s*,\s*` + partPattern + `)*)$`)
		g.undeclared[t] = regexp.MustCompile(`^` + word + `\s+(` + identPattern + `)$`)
	}
	return g
}

// classify tests the statement forms in a fixed order and returns the first
// match. Any line containing the block keyword opens a block labelled with
// its last field. current is the innermost open block label, if any; a close
// only matches that label.
func (g *grammar) classify(raw string, line int, current string, open bool) Statement {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\n", ""))
	pos := Position{Line: line, Column: leadingColumn(raw)}

	if text == "" {
		return &UnrecognizedStmt{position: pos}
	}

	if strings.Contains(text, g.kw.Block) {
		fields := strings.Fields(text)
		return &BlockOpenStmt{Label: fields[len(fields)-1], position: pos}
	}

	if open && g.isClose(text, current) {
		return &BlockCloseStmt{Label: current, position: pos}
	}

	for _, t := range []Type{TypeString, TypeNumber} {
		if stmt := g.matchDeclared(t, text, pos); stmt != nil {
			return stmt
		}
	}

	for _, t := range []Type{TypeString, TypeNumber} {
		if m := g.undeclared[t].FindStringSubmatch(text); m != nil {
			return &DeclareStmt{
				Type:     t,
				Decls:    []Declarator{{Name: m[1]}},
				position: pos,
			}
		}
	}

	if m := copyForm.FindStringSubmatch(text); m != nil && !g.kw.has(m[1]) && !g.kw.has(m[2]) {
		return &CopyStmt{Target: m[1], Source: m[2], position: pos}
	}

	if m := literalForm.FindStringSubmatch(text); m != nil && !g.kw.has(m[1]) {
		return &AssignStmt{Target: m[1], Literal: strings.TrimSpace(m[2]), position: pos}
	}

	if m := g.print.FindStringSubmatch(text); m != nil {
		return &PrintStmt{Name: m[1], position: pos}
	}

	return &UnrecognizedStmt{Text: text, position: pos}
}

func (g *grammar) isClose(text, label string) bool {
	fields := strings.Fields(text)
	return len(fields) == 2 && fields[0] == g.kw.End && fields[1] == label
}

// isCloseAttempt reports whether text starts with the close keyword,
// whatever label follows.
func (g *grammar) isCloseAttempt(text string) bool {
	fields := strings.Fields(text)
	return len(fields) > 0 && fields[0] == g.kw.End
}

// matchDeclared recognizes declarations with at least one initializer or
// more than one part. A single bare name is left to the undeclared form, and
// so is a single initializer whose literal is not of type t: the name is
// declared with the default value. Initializers in a list are kept as given.
func (g *grammar) matchDeclared(t Type, text string, pos Position) *DeclareStmt {
	m := g.declared[t].FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	parts := declaratorPart.FindAllStringSubmatch(m[1], -1)
	decls := make([]Declarator, 0, len(parts))
	for _, part := range parts {
		decls = append(decls, Declarator{
			Name:     part[1],
			Value:    part[2],
			HasValue: part[2] != "",
		})
	}
	if len(decls) == 1 {
		if !decls[0].HasValue {
			return nil
		}
		if typ, _ := literalType(decls[0].Value); typ != t {
			decls[0] = Declarator{Name: decls[0].Name}
		}
	}
	return &DeclareStmt{
		Type:     t,
		Decls:    decls,
		Multi:    len(decls) > 1,
		position: pos,
	}
}

func leadingColumn(raw string) int {
	col := 1
	for len(raw) > 0 {
		r, w := utf8.DecodeRuneInString(raw)
		if r == '\n' || !unicode.IsSpace(r) {
			break
		}
		col++
		raw = raw[w:]
	}
	return col
}
