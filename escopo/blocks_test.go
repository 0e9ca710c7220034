package escopo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlockTrackerStaysAlignedWithScopes(t *testing.T) {
	scopes := NewScopeStack()
	blocks := NewBlockTracker(scopes)

	blocks.Open("A", 1)
	blocks.Open("B", 2)
	if blocks.Depth() != 2 || scopes.Depth() != 2 {
		t.Fatalf("expected depth 2/2, got %d/%d", blocks.Depth(), scopes.Depth())
	}
	if label, ok := blocks.CurrentLabel(); !ok || label != "B" {
		t.Fatalf("expected current label B, got %q", label)
	}
	if diff := cmp.Diff([]string{"A", "B"}, blocks.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	label, ok := blocks.Close()
	if !ok || label != "B" {
		t.Fatalf("expected to close B, got %q", label)
	}
	if blocks.Depth() != 1 || scopes.Depth() != 1 {
		t.Fatalf("expected depth 1/1, got %d/%d", blocks.Depth(), scopes.Depth())
	}
}

func TestBlockTrackerCloseEmpty(t *testing.T) {
	blocks := NewBlockTracker(NewScopeStack())
	if _, ok := blocks.Close(); ok {
		t.Fatalf("close without open blocks should fail")
	}
	if _, ok := blocks.CurrentLabel(); ok {
		t.Fatalf("no current label expected")
	}
}

func TestBlockTrackerCloseDiscardsScope(t *testing.T) {
	scopes := NewScopeStack()
	blocks := NewBlockTracker(scopes)
	blocks.Open("A", 1)
	scopes.Declare(TypeNumber, "n", "1", 2)
	blocks.Close()
	if _, ok := scopes.Lookup("n"); ok {
		t.Fatalf("n should be gone once its block closes")
	}
}
