package escopo

// Statement is one classified source line. The set of implementations is
// closed: BlockOpenStmt, BlockCloseStmt, DeclareStmt, CopyStmt, AssignStmt,
// PrintStmt and UnrecognizedStmt.
type Statement interface {
	Pos() Position
	stmtNode()
}

type BlockOpenStmt struct {
	Label    string
	position Position
}

func (s *BlockOpenStmt) stmtNode()     {}
func (s *BlockOpenStmt) Pos() Position { return s.position }

type BlockCloseStmt struct {
	Label    string
	position Position
}

func (s *BlockCloseStmt) stmtNode()     {}
func (s *BlockCloseStmt) Pos() Position { return s.position }

// Declarator is one `name` or `name = literal` part of a declaration.
type Declarator struct {
	Name     string
	Value    string
	HasValue bool
}

// DeclareStmt covers both declared (`NUMERO a = 1, b`) and bare
// (`NUMERO a`) declarations. Multi is set when the line has several parts.
type DeclareStmt struct {
	Type     Type
	Decls    []Declarator
	Multi    bool
	position Position
}

func (s *DeclareStmt) stmtNode()     {}
func (s *DeclareStmt) Pos() Position { return s.position }

// CopyStmt is `target = source` with an identifier on the right.
type CopyStmt struct {
	Target   string
	Source   string
	position Position
}

func (s *CopyStmt) stmtNode()     {}
func (s *CopyStmt) Pos() Position { return s.position }

// AssignStmt is `target = literal`. Literal is the raw right-hand side and
// may not be a valid literal at all.
type AssignStmt struct {
	Target   string
	Literal  string
	position Position
}

func (s *AssignStmt) stmtNode()     {}
func (s *AssignStmt) Pos() Position { return s.position }

type PrintStmt struct {
	Name     string
	position Position
}

func (s *PrintStmt) stmtNode()     {}
func (s *PrintStmt) Pos() Position { return s.position }

// UnrecognizedStmt is a line that matches no form. Blank lines have an
// empty Text.
type UnrecognizedStmt struct {
	Text     string
	position Position
}

func (s *UnrecognizedStmt) stmtNode()     {}
func (s *UnrecognizedStmt) Pos() Position { return s.position }

// FormName returns a short label for the statement's form.
func FormName(stmt Statement) string {
	switch s := stmt.(type) {
	case *BlockOpenStmt:
		return "block-open"
	case *BlockCloseStmt:
		return "block-close"
	case *DeclareStmt:
		if s.Multi {
			return "declare-multi"
		}
		return "declare"
	case *CopyStmt:
		return "copy"
	case *AssignStmt:
		return "assign"
	case *PrintStmt:
		return "print"
	default:
		return "unrecognized"
	}
}
