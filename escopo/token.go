package escopo

import "fmt"

// TokenKind tags the record stored in a scope.
type TokenKind string

const KindIdentifier TokenKind = "identifier"

// Type is the declared type of a variable. It is fixed at declaration.
type Type int

const (
	TypeNumber Type = iota + 1
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "NUMBER"
	case TypeString:
		return "STRING"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

func (t Type) valid() bool {
	return t == TypeNumber || t == TypeString
}

// Token is the record for one declared variable. Value keeps the literal
// text as written, so strings retain their surrounding quotes.
type Token struct {
	Kind  TokenKind `cbor:"kind"`
	Type  Type      `cbor:"type"`
	Name  string    `cbor:"name"`
	Value string    `cbor:"value"`
	Line  int       `cbor:"line"`
}

// Position identifies a location in the source. Both fields are 1-based.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
