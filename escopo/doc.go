// Package escopo implements a line-oriented interpreter for a small,
// block-scoped language. Each source line is classified into exactly one
// statement form and executed immediately against a stack of lexical scopes:
//   - `BLOCO <label>` opens a block and a new scope; `FIM <label>` closes it.
//   - `NUMERO a = 1, b` and `CADEIA s = "x"` declare typed variables.
//   - `a = b` copies a value between variables of the same type.
//   - `a = 10` or `a = "text"` assigns a literal, declaring `a` when unknown.
//   - `PRINT a` reports the value visible from the innermost block.
//
// Problems in a program never abort execution. They are reported as
// diagnostics on the output sink and the interpreter moves to the next line.
package escopo
