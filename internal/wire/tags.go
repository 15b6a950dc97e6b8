// Package wire implements the binary prefix-tree encoding of spec.md
// §3.4: a compact, bit-exact byte representation of a Value tree used to
// key the trie fact store (internal/store) and to extract head-symbol/
// arity prefixes in O(1) for the rule-index pre-filter (spec §4.4).
package wire

import "fmt"

// tagClass is the top two bits of a control byte.
type tagClass byte

const (
	classArity    tagClass = 0x00 // 00xxxxxx
	classReserved tagClass = 0x40 // 01xxxxxx - MUST fail gracefully on decode
	classVarRef   tagClass = 0x80 // 10xxxxxx
	classSymbolic tagClass = 0xC0 // 11xxxxxx - NewVar (000000) or SymbolSize(k>=1)
)

const (
	classMask  = 0xC0
	valueMask  = 0x3F
	maxArity   = 0x3F // 63
	maxVarRef  = 0x3F
	maxSymSize = 0x3F
	newVarTag  = byte(classSymbolic) // 11000000, low bits zero
)

// leaf discriminator bytes, prefixed to the payload of a SymbolSize entry
// so that every non-compound Value kind can ride the same four tag
// classes the spec defines. This scheme is an implementation choice
// filling a gap the spec's wire table leaves open (it only calls out
// "introduces an n-ary s-expression" and symbol payloads); see DESIGN.md.
const (
	discAtom byte = iota
	discLong
	discFloat
	discBool
	discString
	discURI
	discNil
	discUnit
)

func classOf(b byte) tagClass { return tagClass(b & classMask) }

// ErrReserved is returned when the decoder encounters a 01xxxxxx control
// byte. Per spec.md §3.4 and §9, the decoder must fail gracefully (return
// an error) rather than panic.
var ErrReserved = fmt.Errorf("wire: reserved tag byte encountered")

// ErrArityTooLarge is returned by Encode when an s-expression has 64 or
// more elements: the 6-bit Arity field cannot represent it. Callers
// (internal/store) fall back to the iterative scan path for such
// expressions, per spec.md §4.4's Open Question.
var ErrArityTooLarge = fmt.Errorf("wire: s-expression with 64 or more elements cannot be trie-encoded")

// ErrTooManyVariables is returned by Encode when an expression introduces
// more than 64 distinct variables (the VarRef/NewVar index is 6 bits).
var ErrTooManyVariables = fmt.Errorf("wire: more than 64 distinct variables in one expression")

// ErrSymbolTooLarge is returned by Encode when a symbol payload exceeds 63
// bytes and interning is disabled; enable interning to encode it.
var ErrSymbolTooLarge = fmt.Errorf("wire: symbol payload too large without interning")
