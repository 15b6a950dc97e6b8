// Package sexpr implements the surface-syntax reader: a participle/v2
// lexer and grammar that turns MeTTa source text into internal/value
// trees, following the teacher's grammar.KansoLexer/grammar.go shape
// (a stateful lexer plus struct-tag-driven recursive grammar) but for
// the much smaller s-expression surface syntax spec.md §6 describes.
package sexpr

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes MeTTa source. Rule order matters: Float is tried
// before Int so "3.14" isn't split into an Int "3" followed by a
// malformed trailing token, and both numeric rules are tried before the
// catch-all Symbol rule so atoms never swallow a leading digit run.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
		{"LParen", `\(`, nil},
		{"RParen", `\)`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Float", `-?[0-9]+\.[0-9]+`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"Symbol", `[^\s()"]+`, nil},
	},
})
