package escopo

import (
	"fmt"
	"strings"
	"unicode"
)

// Keywords holds the source spellings of the language's keywords.
type Keywords struct {
	Block  string
	End    string
	Number string
	String string
	Print  string
}

// DefaultKeywords returns the original Portuguese spellings.
func DefaultKeywords() Keywords {
	return Keywords{
		Block:  "BLOCO",
		End:    "FIM",
		Number: "NUMERO",
		String: "CADEIA",
		Print:  "PRINT",
	}
}

func (k Keywords) withDefaults() Keywords {
	def := DefaultKeywords()
	if k.Block == "" {
		k.Block = def.Block
	}
	if k.End == "" {
		k.End = def.End
	}
	if k.Number == "" {
		k.Number = def.Number
	}
	if k.String == "" {
		k.String = def.String
	}
	if k.Print == "" {
		k.Print = def.Print
	}
	return k
}

func (k Keywords) validate() error {
	entries := []struct{ role, word string }{
		{"block", k.Block},
		{"end", k.End},
		{"number", k.Number},
		{"string", k.String},
		{"print", k.Print},
	}
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.word == "" || strings.IndexFunc(entry.word, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: %s keyword %q", ErrInvalidKeyword, entry.role, entry.word)
		}
		if other, ok := seen[entry.word]; ok {
			return fmt.Errorf("%w: %q used for both %s and %s", ErrInvalidKeyword, entry.word, other, entry.role)
		}
		seen[entry.word] = entry.role
	}
	// Any line containing the block keyword opens a block, so no other
	// keyword may contain it.
	for _, entry := range entries[1:] {
		if strings.Contains(entry.word, k.Block) {
			return fmt.Errorf("%w: %s keyword %q contains block keyword %q", ErrInvalidKeyword, entry.role, entry.word, k.Block)
		}
	}
	return nil
}

// TypeKeyword returns the spelling used to declare variables of type t.
func (k Keywords) TypeKeyword(t Type) string {
	switch t {
	case TypeNumber:
		return k.Number
	case TypeString:
		return k.String
	default:
		return ""
	}
}

// List returns every keyword spelling.
func (k Keywords) List() []string {
	return []string{k.Block, k.End, k.Number, k.String, k.Print}
}

func (k Keywords) has(word string) bool {
	switch word {
	case k.Block, k.End, k.Number, k.String, k.Print:
		return true
	}
	return false
}
