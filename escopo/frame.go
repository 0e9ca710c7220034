package escopo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Span locates d on its source line as 1-based rune columns, end exclusive.
// It covers the subject when the subject occurs as a whole word at or after
// the diagnostic column, and the rest of the statement otherwise. ok is false
// when the line is not in source.
func (d *Diagnostic) Span(source string) (start, end int, ok bool) {
	text, ok := sourceLine(source, d.Pos.Line)
	if !ok {
		return 0, 0, false
	}
	line := []rune(text)
	start = min(max(d.Pos.Column, 1), len(line)+1)
	end = max(len(line)+1, start+1)
	if d.Subject != "" {
		subject := []rune(d.Subject)
		if i := findWord(line, subject, start-1); i >= 0 {
			return i + 1, i + 1 + len(subject), true
		}
	}
	return start, end, true
}

// Frame renders the diagnostic's source line with its span underlined:
//
//	2 |   PRINT z
//	  |         ^
//
// It returns "" when the line is not in source.
func (d *Diagnostic) Frame(source string) string {
	start, end, ok := d.Span(source)
	if !ok {
		return ""
	}
	text, _ := sourceLine(source, d.Pos.Line)

	var pad strings.Builder
	for _, r := range []rune(text)[:start-1] {
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	gutter := strconv.Itoa(d.Pos.Line)
	return fmt.Sprintf("%s | %s\n%s | %s%s",
		gutter,
		text,
		strings.Repeat(" ", len(gutter)),
		pad.String(),
		strings.Repeat("^", end-start),
	)
}

// FormatCodeFrame renders the line at pos with the statement from pos.Column
// underlined.
func FormatCodeFrame(source string, pos Position) string {
	return (&Diagnostic{Pos: pos}).Frame(source)
}

func sourceLine(source string, line int) (string, bool) {
	lines := SplitLines(source)
	if line <= 0 || line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], " \t\r"), true
}

func findWord(line, word []rune, from int) int {
	for i := from; i+len(word) <= len(line); i++ {
		if !slices.Equal(line[i:i+len(word)], word) {
			continue
		}
		if i > 0 && isWordRune(line[i-1]) {
			continue
		}
		if j := i + len(word); j < len(line) && isWordRune(line[j]) {
			continue
		}
		return i
	}
	return -1
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
