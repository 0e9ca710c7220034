package escopo

import "strings"

const indentUnit = "  "

// Format normalizes source layout: block bodies are indented two spaces per
// open block, trailing whitespace is removed and the result ends with
// exactly one newline. Statement text is left as written.
func Format(source string, kw Keywords) string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	g := newGrammar(kw.withDefaults())
	var labels []string
	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		text := strings.TrimSpace(line)
		if text == "" {
			lines[i] = ""
			continue
		}
		current, open := "", len(labels) > 0
		if open {
			current = labels[len(labels)-1]
		}
		switch stmt := g.classify(text, i+1, current, open).(type) {
		case *BlockOpenStmt:
			lines[i] = strings.Repeat(indentUnit, len(labels)) + text
			labels = append(labels, stmt.Label)
		case *BlockCloseStmt:
			labels = labels[:len(labels)-1]
			lines[i] = strings.Repeat(indentUnit, len(labels)) + text
		default:
			lines[i] = strings.Repeat(indentUnit, len(labels)) + text
		}
	}

	joined := strings.Join(lines, "\n")
	joined = strings.TrimRight(joined, "\n")
	return joined + "\n"
}
