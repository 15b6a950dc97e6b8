package bindings

import "github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"

// ApplyBindings walks template substituting bound variables, per spec.md
// §4.2. When no substitution applies anywhere in a subtree it returns
// that subtree's original Value unchanged rather than rebuilding it,
// approximating the spec's Cow-like "borrows the template" contract
// without Rust's borrow machinery.
func ApplyBindings(template value.Value, b Bindings) value.Value {
	if template.IsVariable() {
		if v, ok := b[template.VariableName()]; ok {
			return v
		}
		return template
	}

	switch template.Kind {
	case value.KindSExpr, value.KindConjunction:
		if len(template.Items) == 0 {
			return template
		}
		changed := false
		items := make([]value.Value, len(template.Items))
		for i, it := range template.Items {
			sub := ApplyBindings(it, b)
			items[i] = sub
			if !value.Equal(sub, it) {
				changed = true
			}
		}
		if !changed {
			return template
		}
		out := template
		out.Items = items
		return out

	case value.KindError:
		if template.ErrInner == nil {
			return template
		}
		sub := ApplyBindings(*template.ErrInner, b)
		if value.Equal(sub, *template.ErrInner) {
			return template
		}
		out := template
		out.ErrInner = &sub
		return out

	case value.KindType:
		if template.TypeExpr == nil {
			return template
		}
		sub := ApplyBindings(*template.TypeExpr, b)
		if value.Equal(sub, *template.TypeExpr) {
			return template
		}
		out := template
		out.TypeExpr = &sub
		return out

	default:
		return template
	}
}
