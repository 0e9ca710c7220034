package escopo

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Snapshot is a serializable copy of the interpreter's open blocks and
// their scopes, outermost first.
type Snapshot struct {
	Line   int             `cbor:"line"`
	Blocks []BlockSnapshot `cbor:"blocks"`
}

type BlockSnapshot struct {
	Label  string  `cbor:"label"`
	Line   int     `cbor:"line"`
	Tokens []Token `cbor:"tokens"`
}

// Snapshot captures the current state. Later execution does not affect it.
func (in *Interpreter) Snapshot() Snapshot {
	snap := Snapshot{Line: in.line}
	for i, label := range in.blocks.Labels() {
		snap.Blocks = append(snap.Blocks, BlockSnapshot{
			Label:  label,
			Line:   in.blocks.openedAt(i),
			Tokens: in.scopes.Scope(i).Tokens(),
		})
	}
	return snap
}

// Restore replaces the interpreter state with snap. The state is left
// untouched when snap is invalid.
func (in *Interpreter) Restore(snap Snapshot) error {
	scopes := NewScopeStack()
	blocks := NewBlockTracker(scopes)
	for _, blk := range snap.Blocks {
		if blk.Label == "" {
			return fmt.Errorf("%w: block without label", ErrInvalidSnapshot)
		}
		blocks.Open(blk.Label, blk.Line)
		for _, tok := range blk.Tokens {
			if !tok.Type.valid() {
				return fmt.Errorf("%w: %s has unknown type %d", ErrInvalidSnapshot, tok.Name, int(tok.Type))
			}
			if !identLiteral.MatchString(tok.Name) {
				return fmt.Errorf("%w: invalid identifier %q", ErrInvalidSnapshot, tok.Name)
			}
			if !scopes.Declare(tok.Type, tok.Name, tok.Value, tok.Line) {
				return fmt.Errorf("%w: %s declared twice in block %s", ErrInvalidSnapshot, tok.Name, blk.Label)
			}
		}
	}
	in.scopes = scopes
	in.blocks = blocks
	in.line = snap.Line
	return nil
}

// EncodeSnapshot writes snap as CBOR.
func EncodeSnapshot(w io.Writer, snap Snapshot) error {
	if err := cbor.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a CBOR snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := cbor.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}
