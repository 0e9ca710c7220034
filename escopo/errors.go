package escopo

import "errors"

var (
	ErrInvalidKeyword  = errors.New("invalid keyword")
	ErrUnknownLocale   = errors.New("unknown locale")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// DiagnosticKind classifies a problem found while running or analyzing a
// program.
type DiagnosticKind int

const (
	DiagUndeclared DiagnosticKind = iota + 1
	DiagInvalidAssignment
	DiagInvalidLiteral
	DiagUnrecognized

	// Reported by Analyze only; the interpreter itself never emits these.
	DiagMismatchedClose
	DiagUnclosedBlock
	DiagOutsideBlock
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagUndeclared:
		return "undeclared"
	case DiagInvalidAssignment:
		return "invalid-assignment"
	case DiagInvalidLiteral:
		return "invalid-literal"
	case DiagUnrecognized:
		return "unrecognized"
	case DiagMismatchedClose:
		return "mismatched-close"
	case DiagUnclosedBlock:
		return "unclosed-block"
	case DiagOutsideBlock:
		return "outside-block"
	default:
		return "unknown"
	}
}

// Diagnostic is a non-fatal problem attached to a source position. Message
// is already localized and carries no line prefix.
type Diagnostic struct {
	Kind    DiagnosticKind
	Pos     Position
	Subject string
	Message string
}

func (d *Diagnostic) Error() string {
	return d.Message
}
