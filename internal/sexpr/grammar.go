package sexpr

// Program is a sequence of top-level forms, matching spec.md §6's
// "Source → forms (reader)".
type Program struct {
	Forms []*Expr `@@*`
}

// Expr is any parsed form: a query-sugar prefix, a parenthesized list,
// or an atomic literal/symbol. Query sugar `!(expr)` is accepted with or
// without adjoining whitespace; spec.md §6 only names the tight form,
// so accepting both is a deliberate widening recorded in DESIGN.md.
type Expr struct {
	Bang *BangExpr `  @@`
	List *ListExpr `| @@`
	Atom *AtomExpr `| @@`
}

// BangExpr implements `!(expr)` as sugar for `(! expr)`.
type BangExpr struct {
	Inner *Expr `"!" @@`
}

// ListExpr is a parenthesized form: `(head arg1 arg2 ...)`, or `()` for
// an empty s-expression.
type ListExpr struct {
	Items []*Expr `"(" @@* ")"`
}

// AtomExpr is one literal or bare symbol.
type AtomExpr struct {
	Float *float64 `  @Float`
	Int   *int64   `| @Int`
	Str   *string  `| @String`
	Bool  *string  `| @("True" | "False")`
	Sym   *string  `| @Symbol`
}
