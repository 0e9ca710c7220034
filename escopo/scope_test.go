package escopo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScopeStackLookupPrefersInnermost(t *testing.T) {
	stack := NewScopeStack()
	stack.Push()
	stack.Declare(TypeNumber, "x", "1", 1)
	stack.Push()
	stack.Declare(TypeString, "x", `"inner"`, 2)

	tok, ok := stack.Lookup("x")
	if !ok {
		t.Fatalf("expected x to resolve")
	}
	if tok.Type != TypeString || tok.Value != `"inner"` {
		t.Fatalf("expected inner x, got %#v", tok)
	}

	stack.Pop()
	tok, ok = stack.Lookup("x")
	if !ok || tok.Value != "1" {
		t.Fatalf("expected outer x after pop, got %#v (found=%v)", tok, ok)
	}
}

func TestScopeStackExistsInCurrentScopeOnly(t *testing.T) {
	stack := NewScopeStack()
	if stack.ExistsInCurrentScope("x") {
		t.Fatalf("empty stack should not report x")
	}
	stack.Push()
	stack.Declare(TypeNumber, "x", "1", 1)
	stack.Push()
	if stack.ExistsInCurrentScope("x") {
		t.Fatalf("x lives in the enclosing scope, not the current one")
	}
	if _, ok := stack.Lookup("x"); !ok {
		t.Fatalf("lookup should still find x in the enclosing scope")
	}
}

func TestScopeStackDeclareIgnoresRedeclaration(t *testing.T) {
	stack := NewScopeStack()
	stack.Push()
	if !stack.Declare(TypeNumber, "x", "1", 1) {
		t.Fatalf("first declaration should succeed")
	}
	if stack.Declare(TypeNumber, "x", "2", 2) {
		t.Fatalf("redeclaration should be ignored")
	}
	tok, _ := stack.Lookup("x")
	if tok.Value != "1" {
		t.Fatalf("expected value 1, got %q", tok.Value)
	}
}

func TestScopeStackDeclareWithoutScopeIsNoop(t *testing.T) {
	stack := NewScopeStack()
	if stack.Declare(TypeNumber, "x", "1", 1) {
		t.Fatalf("declare without scope should report false")
	}
	if _, ok := stack.Lookup("x"); ok {
		t.Fatalf("x should not exist")
	}
}

func TestScopeStackAssignUpdatesInnermostMatch(t *testing.T) {
	stack := NewScopeStack()
	stack.Push()
	stack.Declare(TypeNumber, "x", "1", 1)
	stack.Push()
	stack.Declare(TypeNumber, "x", "2", 2)

	if !stack.Assign("x", "3") {
		t.Fatalf("assign should find x")
	}
	if stack.Assign("missing", "3") {
		t.Fatalf("assign to an unknown name should report false")
	}

	stack.Pop()
	tok, _ := stack.Lookup("x")
	if tok.Value != "1" {
		t.Fatalf("outer x should be untouched, got %q", tok.Value)
	}
}

func TestScopeStackLookupReturnsCopy(t *testing.T) {
	stack := NewScopeStack()
	stack.Push()
	stack.Declare(TypeNumber, "x", "1", 1)

	tok, _ := stack.Lookup("x")
	tok.Value = "99"

	again, _ := stack.Lookup("x")
	if again.Value != "1" {
		t.Fatalf("mutating a looked-up token must not change the scope, got %q", again.Value)
	}
}

func TestScopeStackPopEmpty(t *testing.T) {
	stack := NewScopeStack()
	if stack.Pop() {
		t.Fatalf("pop on empty stack should report false")
	}
}

func TestScopeStackVisibleOmitsShadowed(t *testing.T) {
	stack := NewScopeStack()
	stack.Push()
	stack.Declare(TypeNumber, "a", "1", 1)
	stack.Declare(TypeNumber, "b", "2", 2)
	stack.Push()
	stack.Declare(TypeString, "a", `"x"`, 4)

	got := stack.Visible()
	want := []Token{
		{Kind: KindIdentifier, Type: TypeString, Name: "a", Value: `"x"`, Line: 4},
		{Kind: KindIdentifier, Type: TypeNumber, Name: "b", Value: "2", Line: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("visible tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScopeTokensKeepInsertionOrder(t *testing.T) {
	stack := NewScopeStack()
	stack.Push()
	for _, name := range []string{"c", "a", "b"} {
		stack.Declare(TypeNumber, name, "0", 1)
	}
	var names []string
	for _, tok := range stack.Scope(0).Tokens() {
		names = append(names, tok.Name)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if stack.Scope(1) != nil {
		t.Fatalf("out of range scope should be nil")
	}
}
