package escopo

import (
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"
)

// Config controls keyword spellings and how output is rendered.
type Config struct {
	Keywords           Keywords
	Locale             string
	LineNumbers        bool
	ReportUnrecognized bool
	Logger             commonlog.Logger
}

// Interpreter owns one scope stack and its block tracker. It is not safe
// for concurrent use; create one per program.
type Interpreter struct {
	config  Config
	grammar *grammar
	text    *localizer
	log     commonlog.Logger
	sink    Sink

	scopes *ScopeStack
	blocks *BlockTracker
	line   int

	declared func(tok Token, block string)
}

// NewInterpreter validates cfg, fills defaults and returns an interpreter
// writing to sink. A nil sink discards output.
func NewInterpreter(cfg Config, sink Sink) (*Interpreter, error) {
	cfg.Keywords = cfg.Keywords.withDefaults()
	if err := cfg.Keywords.validate(); err != nil {
		return nil, err
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	text, err := newLocalizer(cfg.Locale)
	if err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = commonlog.GetLogger("escopo")
	}
	if sink == nil {
		sink = Discard
	}

	scopes := NewScopeStack()
	return &Interpreter{
		config:  cfg,
		grammar: newGrammar(cfg.Keywords),
		text:    text,
		log:     cfg.Logger,
		sink:    sink,
		scopes:  scopes,
		blocks:  NewBlockTracker(scopes),
	}, nil
}

// MustNewInterpreter is like NewInterpreter but panics on invalid config.
func MustNewInterpreter(cfg Config, sink Sink) *Interpreter {
	in, err := NewInterpreter(cfg, sink)
	if err != nil {
		panic(fmt.Sprintf("escopo: %v", err))
	}
	return in
}

func (in *Interpreter) Config() Config {
	return in.config
}

func (in *Interpreter) Keywords() Keywords {
	return in.config.Keywords
}

// SetSink redirects subsequent output.
func (in *Interpreter) SetSink(sink Sink) {
	if sink == nil {
		sink = Discard
	}
	in.sink = sink
}

func (in *Interpreter) Scopes() *ScopeStack {
	return in.scopes
}

func (in *Interpreter) Blocks() *BlockTracker {
	return in.blocks
}

// Line returns the number of lines executed so far.
func (in *Interpreter) Line() int {
	return in.line
}

// Depth returns how many blocks are open.
func (in *Interpreter) Depth() int {
	return in.blocks.Depth()
}

// CurrentBlock returns the innermost open block label.
func (in *Interpreter) CurrentBlock() (string, bool) {
	return in.blocks.CurrentLabel()
}

// Lookup resolves name from the innermost scope outwards.
func (in *Interpreter) Lookup(name string) (Token, bool) {
	return in.scopes.Lookup(name)
}

// Visible lists the identifiers currently in scope, innermost first.
func (in *Interpreter) Visible() []Token {
	return in.scopes.Visible()
}

// Reset discards every open block and restarts line numbering.
func (in *Interpreter) Reset() {
	in.scopes = NewScopeStack()
	in.blocks = NewBlockTracker(in.scopes)
	in.line = 0
}

// Classify returns the statement the next line would be executed as,
// without executing it.
func (in *Interpreter) Classify(line string) Statement {
	label, open := in.blocks.CurrentLabel()
	return in.grammar.classify(line, in.line+1, label, open)
}

// Exec classifies and executes one source line and returns the statement
// it was classified as.
func (in *Interpreter) Exec(line string) Statement {
	stmt := in.Classify(line)
	in.line++
	in.log.Debugf("line %d: %s", in.line, FormName(stmt))
	in.execute(stmt)
	return stmt
}

// RunString executes every line of source in order.
func (in *Interpreter) RunString(source string) {
	for _, line := range SplitLines(source) {
		in.Exec(line)
	}
}

// Run reads all of r and executes it line by line.
func (in *Interpreter) Run(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	in.RunString(string(data))
	return nil
}

// SplitLines splits source on newlines. A final newline does not start an
// extra line. Carriage returns and surrounding whitespace are dropped later
// during classification.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(source, "\n"), "\n")
}
