package escopo

type openBlock struct {
	label string
	line  int
}

// BlockTracker keeps the labels of the open blocks. It is index-aligned with
// its ScopeStack: every Open pushes a scope and every Close pops one.
type BlockTracker struct {
	blocks []openBlock
	scopes *ScopeStack
}

func NewBlockTracker(scopes *ScopeStack) *BlockTracker {
	return &BlockTracker{scopes: scopes}
}

// Open pushes label together with a fresh scope.
func (b *BlockTracker) Open(label string, line int) {
	b.blocks = append(b.blocks, openBlock{label: label, line: line})
	b.scopes.Push()
}

// CurrentLabel returns the label of the innermost open block.
func (b *BlockTracker) CurrentLabel() (string, bool) {
	if len(b.blocks) == 0 {
		return "", false
	}
	return b.blocks[len(b.blocks)-1].label, true
}

// Close pops the innermost label and its scope, returning the label.
func (b *BlockTracker) Close() (string, bool) {
	if len(b.blocks) == 0 || b.scopes.Depth() == 0 {
		return "", false
	}
	label := b.blocks[len(b.blocks)-1].label
	b.blocks = b.blocks[:len(b.blocks)-1]
	b.scopes.Pop()
	return label, true
}

func (b *BlockTracker) Depth() int {
	return len(b.blocks)
}

// Labels returns the open labels, outermost first.
func (b *BlockTracker) Labels() []string {
	out := make([]string, len(b.blocks))
	for i, blk := range b.blocks {
		out[i] = blk.label
	}
	return out
}

func (b *BlockTracker) openedAt(i int) int {
	if i < 0 || i >= len(b.blocks) {
		return 0
	}
	return b.blocks[i].line
}
