package escopo

// Scope is an insertion-ordered collection of tokens. Names are unique
// within a scope but may shadow names in enclosing scopes.
type Scope struct {
	tokens []*Token
}

func newScope() *Scope {
	return &Scope{}
}

func (s *Scope) find(name string) *Token {
	for _, tok := range s.tokens {
		if tok.Name == name {
			return tok
		}
	}
	return nil
}

// Tokens returns copies of the scope's tokens in declaration order.
func (s *Scope) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	for i, tok := range s.tokens {
		out[i] = *tok
	}
	return out
}

// Len reports how many tokens the scope holds.
func (s *Scope) Len() int {
	return len(s.tokens)
}

// ScopeStack is the ordered stack of open scopes, innermost last.
type ScopeStack struct {
	scopes []*Scope
}

func NewScopeStack() *ScopeStack {
	return &ScopeStack{}
}

// Depth returns the number of open scopes.
func (s *ScopeStack) Depth() int {
	return len(s.scopes)
}

// Push opens an empty scope on top of the stack.
func (s *ScopeStack) Push() {
	s.scopes = append(s.scopes, newScope())
}

// Pop discards the innermost scope and all of its tokens. It reports false
// when the stack is already empty.
func (s *ScopeStack) Pop() bool {
	if len(s.scopes) == 0 {
		return false
	}
	s.scopes[len(s.scopes)-1] = nil
	s.scopes = s.scopes[:len(s.scopes)-1]
	return true
}

func (s *ScopeStack) top() *Scope {
	if len(s.scopes) == 0 {
		return nil
	}
	return s.scopes[len(s.scopes)-1]
}

func (s *ScopeStack) resolve(name string) *Token {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if tok := s.scopes[i].find(name); tok != nil {
			return tok
		}
	}
	return nil
}

// Lookup searches from the innermost scope outwards and returns a copy of
// the first matching token.
func (s *ScopeStack) Lookup(name string) (Token, bool) {
	tok := s.resolve(name)
	if tok == nil {
		return Token{}, false
	}
	return *tok, true
}

// ExistsInCurrentScope only checks the innermost scope.
func (s *ScopeStack) ExistsInCurrentScope(name string) bool {
	top := s.top()
	return top != nil && top.find(name) != nil
}

// Declare appends a token to the innermost scope. Redeclaring a name in the
// same scope is a no-op, as is declaring with no open scope; both report false.
func (s *ScopeStack) Declare(typ Type, name, value string, line int) bool {
	top := s.top()
	if top == nil || top.find(name) != nil {
		return false
	}
	top.tokens = append(top.tokens, &Token{
		Kind:  KindIdentifier,
		Type:  typ,
		Name:  name,
		Value: value,
		Line:  line,
	})
	return true
}

// Assign overwrites the value of the innermost token named name. It reports
// false when no such token exists.
func (s *ScopeStack) Assign(name, value string) bool {
	tok := s.resolve(name)
	if tok == nil {
		return false
	}
	tok.Value = value
	return true
}

// Scope returns the scope at depth i, where 0 is the outermost.
func (s *ScopeStack) Scope(i int) *Scope {
	if i < 0 || i >= len(s.scopes) {
		return nil
	}
	return s.scopes[i]
}

// Visible lists the tokens reachable by Lookup, innermost first, with
// shadowed names omitted.
func (s *ScopeStack) Visible() []Token {
	seen := make(map[string]struct{})
	var out []Token
	for i := len(s.scopes) - 1; i >= 0; i-- {
		for _, tok := range s.scopes[i].tokens {
			if _, ok := seen[tok.Name]; ok {
				continue
			}
			seen[tok.Name] = struct{}{}
			out = append(out, *tok)
		}
	}
	return out
}
